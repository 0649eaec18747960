package pettests

import (
	"github.com/petfriends/api-contract-tests/framework"
)

func RunTestSuite(
	env Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		env.run = c
		t := newTestScope(c, &env)

		t.Run("authentication", DoAuthenticationTests)
		t.Run("list pets", DoListPetsTests)
		t.Run("create pet", DoCreatePetTests)
		t.Run("photo", DoPhotoTests)
		t.Run("update", DoUpdatePetTests)
		t.Run("delete", DoDeletePetTests)
		t.Run("field validation", DoFieldValidationTests)
		t.Run("scenario", DoScenarioTests)
	})
}
