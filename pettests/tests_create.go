package pettests

import (
	"github.com/petfriends/api-contract-tests/client"
	"github.com/petfriends/api-contract-tests/servicedef"
)

var validPet = client.PetFields{Name: "Кошка", AnimalType: "Beatiful cat", Age: "8"}

func DoCreatePetTests(t *T) {
	t.Run("with photo", func(t *T) {
		authKey := t.RequireAuthKey()
		fields := client.PetFields{Name: "Кошка", AnimalType: "Beatiful cat", Age: "2"}
		resp := t.AddNewPet(authKey, fields, t.Photo())
		t.RequireStatus(200, resp)
		t.AssertPetFields(fields, resp)
	})

	t.Run("simple with valid data", func(t *T) {
		authKey := t.RequireAuthKey()
		resp := t.AddNewPetSimple(authKey, validPet)
		t.RequireStatus(200, resp)
		t.AssertPetFields(validPet, resp)
	})

	t.Run("simple without animal type", func(t *T) {
		authKey := t.RequireAuthKey()
		form := validPet.Form()
		form.Del(servicedef.FieldAnimalType)
		resp := t.AddNewPetSimpleForm(authKey, form)
		t.AssertStatus(400, resp)
	})

	t.Run("simple with empty fields", func(t *T) {
		authKey := t.RequireAuthKey()
		resp := t.AddNewPetSimple(authKey, client.PetFields{})
		t.AssertStatus(400, resp)
	})

	t.Run("invalid key", func(t *T) {
		resp := t.AddNewPetSimple(t.Config().Invalid.Key, validPet)
		t.AssertStatus(403, resp)
	})
}
