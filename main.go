package main

import (
	"fmt"
	"os"

	"github.com/petfriends/api-contract-tests/client"
	"github.com/petfriends/api-contract-tests/config"
	"github.com/petfriends/api-contract-tests/framework"
	"github.com/petfriends/api-contract-tests/pettests"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}
	if params.serviceURL != "" {
		cfg.Service.URL = params.serviceURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
			os.Exit(1)
		}
	}

	env := pettests.Environment{
		Client:       client.NewPetFriendsClient(cfg.Service.URL, nil, nil),
		Config:       *cfg,
		Photo:        client.GeneratedJPEG(),
		InvalidPhoto: client.TextFile(),
		Cleanup:      params.cleanup,
	}
	if params.photoPath != "" {
		if env.Photo, err = client.LoadPhoto(params.photoPath); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
			os.Exit(1)
		}
	}
	if params.invalidPhotoPath != "" {
		if env.InvalidPhoto, err = client.LoadPhoto(params.invalidPhotoPath); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
			os.Exit(1)
		}
	}

	if err := framework.AwaitService(cfg.Service.URL, params.waitTimeout, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Service error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := pettests.RunTestSuite(env, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		if cmd := params.rerunCommand(os.Args[0], results); cmd != "" {
			fmt.Println()
			fmt.Println("To rerun the failed tests:")
			fmt.Println("  " + cmd)
		}
		os.Exit(1)
	}
}
