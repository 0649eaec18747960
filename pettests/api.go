package pettests

import (
	"fmt"
	"net/url"

	"github.com/petfriends/api-contract-tests/client"
	"github.com/petfriends/api-contract-tests/config"
	"github.com/petfriends/api-contract-tests/framework"
	"github.com/petfriends/api-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const noOwnPetsMessage = "there are no pets owned by this user"

// Environment is the configuration shared by every test in a run.
type Environment struct {
	// Client is the API client. Each test gets a copy that logs to the test's debug output.
	Client *client.PetFriendsClient

	// Config supplies the valid and invalid credentials.
	Config config.Config

	// Photo is a valid image file; InvalidPhoto is a file that the service must refuse.
	Photo        client.Photo
	InvalidPhoto client.Photo

	// Cleanup causes every pet that a test creates to be deleted when the test run ends.
	Cleanup bool

	run *framework.Context
}

// T represents a test or subtest in the PetFriends test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is outside
// of the Go test runner. Those features are provided by our lower-level framework package.
//
// It also provides an API client whose requests and responses go to this test's debug output, and
// helpers for the steps that most tests share, such as getting an auth key. The helpers that start
// with "Require" cause the test to immediately fail if the step does not succeed.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it were
// a *testing.T.
type T struct {
	context *framework.Context
	env     *Environment
	client  *client.PetFriendsClient
}

func newTestScope(context *framework.Context, env *Environment) *T {
	return &T{
		context: context,
		env:     env,
		client:  env.Client.WithLogger(context.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Defer schedules an action to run at the end of the test, even if it fails.
func (t *T) Defer(action func()) {
	t.context.Defer(action)
}

// Client returns the API client for this test.
func (t *T) Client() *client.PetFriendsClient {
	return t.client
}

// Config returns the credentials for the test run.
func (t *T) Config() config.Config {
	return t.env.Config
}

// Photo returns the image file that tests upload.
func (t *T) Photo() client.Photo {
	return t.env.Photo
}

// InvalidPhoto returns the file that the service is expected to refuse as a photo.
func (t *T) InvalidPhoto() client.Photo {
	return t.env.InvalidPhoto
}

// RequireResponse fails the test immediately if the request could not be sent or the response
// could not be read. A response with any status code is accepted.
func (t *T) RequireResponse(resp client.Response, err error) client.Response {
	require.NoError(t, err)
	return resp
}

// AssertStatus checks the status code of a response, and reports the body if it is wrong.
func (t *T) AssertStatus(expected int, resp client.Response) bool {
	return assert.Equal(t, expected, resp.Status, "unexpected status, response body was: %s", resp)
}

// RequireStatus is the same as AssertStatus, but also stops the test if the status code is wrong.
func (t *T) RequireStatus(expected int, resp client.Response) {
	if !t.AssertStatus(expected, resp) {
		t.FailNow()
	}
}

// RequireAuthKey gets an auth key for the valid credentials.
func (t *T) RequireAuthKey() string {
	cfg := t.Config()
	resp := t.RequireResponse(t.client.GetAPIKey(cfg.Valid.Login, cfg.Valid.Password))
	t.RequireStatus(200, resp)
	key, ok := resp.AuthKey()
	require.True(t, ok, "auth key response did not contain %q: %s", servicedef.PropKey, resp)
	return key
}

// RequireMyPets gets the list of pets owned by the user.
func (t *T) RequireMyPets(authKey string) []client.Pet {
	resp := t.RequireResponse(t.client.GetListOfPets(authKey, servicedef.FilterMyPets))
	t.RequireStatus(200, resp)
	pets, ok := resp.Pets()
	require.True(t, ok, "pet list response did not contain a %q array: %s", servicedef.PropPets, resp)
	return pets
}

// RequireOwnPet returns the first pet owned by the user. The test fails if there is none, since
// the tests that use this operate on whatever pets the account already has.
func (t *T) RequireOwnPet(authKey string) client.Pet {
	pets := t.RequireMyPets(authKey)
	if len(pets) == 0 {
		require.Fail(t, noOwnPetsMessage)
	}
	return pets[0]
}

// AddNewPetSimple creates a pet without a photo. If the environment has cleanup enabled and the
// pet was created, it is deleted at the end of the test run.
func (t *T) AddNewPetSimple(authKey string, fields client.PetFields) client.Response {
	resp := t.RequireResponse(t.client.AddNewPetSimple(authKey, fields))
	t.cleanupCreatedPet(authKey, resp)
	return resp
}

// AddNewPetSimpleForm is the same as AddNewPetSimple, for a form that may be missing fields.
func (t *T) AddNewPetSimpleForm(authKey string, form url.Values) client.Response {
	resp := t.RequireResponse(t.client.AddNewPetSimpleForm(authKey, form))
	t.cleanupCreatedPet(authKey, resp)
	return resp
}

// AddNewPet creates a pet with a photo, with the same cleanup behavior as AddNewPetSimple.
func (t *T) AddNewPet(authKey string, fields client.PetFields, photo client.Photo) client.Response {
	resp := t.RequireResponse(t.client.AddNewPet(authKey, fields, photo))
	t.cleanupCreatedPet(authKey, resp)
	return resp
}

func (t *T) cleanupCreatedPet(authKey string, resp client.Response) {
	if !t.env.Cleanup || resp.Status != 200 {
		return
	}
	pet, ok := resp.Pet()
	if !ok || pet.ID == "" {
		return
	}
	// deleted when the whole run ends, since later tests may operate on the pet
	createdBy := t.context.ID()
	run := t.env.run
	t.Debug("pet %s will be deleted at the end of the run", pet.ID)
	run.Defer(func() {
		if resp, err := t.env.Client.DeletePet(authKey, pet.ID); err != nil || resp.Status != 200 {
			run.Errorf("could not delete pet %s created by %s: %s", pet.ID, createdBy, describeFailure(resp, err))
		}
	})
}

// AssertPetFields checks that a pet record has the specified name, animal type, and age.
func (t *T) AssertPetFields(expected client.PetFields, resp client.Response) {
	pet, ok := resp.Pet()
	if !assert.True(t, ok, "response body was not a pet record: %s", resp) {
		return
	}
	assert.Equal(t, expected.Name, pet.Name, "wrong %q", servicedef.PropName)
	assert.Equal(t, expected.AnimalType, pet.AnimalType, "wrong %q", servicedef.PropAnimalType)
	assert.Equal(t, expected.Age, pet.Age, "wrong %q", servicedef.PropAge)
}

func describeFailure(resp client.Response, err error) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("status %d: %s", resp.Status, resp)
}
