package pettests

import (
	"github.com/petfriends/api-contract-tests/client"
)

// DoFieldValidationTests tries every combination of the input classes for name, animal type,
// and age. A pet must be refused if its name or animal type is empty or its age is not valid,
// and created with exactly the submitted values otherwise.
func DoFieldValidationTests(t *T) {
	for _, name := range TextInputs() {
		name := name
		t.Run("name="+name.ID, func(t *T) {
			for _, animalType := range TextInputs() {
				animalType := animalType
				t.Run("animal_type="+animalType.ID, func(t *T) {
					for _, age := range AgeInputs() {
						age := age
						t.Run("age="+age.ID, func(t *T) {
							fields := client.PetFields{Name: name.Value, AnimalType: animalType.Value, Age: age.Value}
							authKey := t.RequireAuthKey()
							resp := t.AddNewPetSimple(authKey, fields)
							if !IsPetValid(fields.Name, fields.AnimalType, fields.Age) {
								t.AssertStatus(400, resp)
								return
							}
							t.RequireStatus(200, resp)
							t.AssertPetFields(fields, resp)
						})
					}
				})
			}
		})
	}
}
