package pettests

import (
	"github.com/petfriends/api-contract-tests/client"
)

func DoUpdatePetTests(t *T) {
	t.Run("own pet", func(t *T) {
		authKey := t.RequireAuthKey()
		pet := t.RequireOwnPet(authKey)
		fields := client.PetFields{Name: "Мурзик", AnimalType: "Котэ", Age: "5"}
		resp := t.RequireResponse(t.Client().UpdatePetInfo(authKey, pet.ID, fields))
		t.RequireStatus(200, resp)
		t.AssertPetFields(fields, resp)
	})
}
