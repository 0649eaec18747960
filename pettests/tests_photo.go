package pettests

import (
	"github.com/petfriends/api-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

func DoPhotoTests(t *T) {
	t.Run("valid image", func(t *T) {
		authKey := t.RequireAuthKey()
		pet := t.RequireOwnPet(authKey)
		resp := t.RequireResponse(t.Client().AddSetPhoto(authKey, pet.ID, t.Photo()))
		t.RequireStatus(200, resp)
		updated, ok := resp.Pet()
		if assert.True(t, ok, "response body was not a pet record: %s", resp) {
			assert.True(t, updated.Photo.IsDefined(), "response did not contain %q", servicedef.PropPetPhoto)
		}
	})

	t.Run("file that is not an image", func(t *T) {
		authKey := t.RequireAuthKey()
		pet := t.RequireOwnPet(authKey)
		resp := t.RequireResponse(t.Client().AddSetPhoto(authKey, pet.ID, t.InvalidPhoto()))
		t.AssertStatus(500, resp)
	})
}
