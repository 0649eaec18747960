package pettests

import (
	"github.com/petfriends/api-contract-tests/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoDeletePetTests(t *T) {
	t.Run("own pet", func(t *T) {
		authKey := t.RequireAuthKey()
		pets := t.RequireMyPets(authKey)
		if len(pets) == 0 {
			// the pet is created directly, since it is deleted by this test anyway
			resp := t.RequireResponse(t.Client().AddNewPet(authKey,
				client.PetFields{Name: "Суперкот", AnimalType: "кот", Age: "3"}, t.Photo()))
			t.RequireStatus(200, resp)
			pets = t.RequireMyPets(authKey)
			require.NotEmpty(t, pets, "created a pet, but the list of own pets is still empty")
		}
		petID := pets[0].ID

		resp := t.RequireResponse(t.Client().DeletePet(authKey, petID))
		t.AssertStatus(200, resp)

		remaining := t.RequireMyPets(authKey)
		assert.False(t, client.ContainsPet(remaining, petID), "deleted pet %s is still in the list of own pets", petID)
	})
}
