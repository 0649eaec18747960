package pettests

import (
	"github.com/petfriends/api-contract-tests/servicedef"

	"github.com/stretchr/testify/require"
)

func DoScenarioTests(t *T) {
	t.Run("get key and create pet", func(t *T) {
		cfg := t.Config()
		keyResp := t.RequireResponse(t.Client().GetAPIKey(cfg.Valid.Login, cfg.Valid.Password))
		t.RequireStatus(200, keyResp)
		authKey, ok := keyResp.AuthKey()
		require.True(t, ok, "response did not contain %q: %s", servicedef.PropKey, keyResp)

		resp := t.AddNewPetSimple(authKey, validPet)
		t.RequireStatus(200, resp)
		pet, ok := resp.Pet()
		require.True(t, ok, "response body was not a pet record: %s", resp)
		require.Equal(t, validPet.Name, pet.Name)
	})
}
