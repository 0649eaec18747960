package pettests

import (
	"github.com/petfriends/api-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoListPetsTests(t *T) {
	t.Run("all pets", func(t *T) {
		authKey := t.RequireAuthKey()
		resp := t.RequireResponse(t.Client().GetListOfPets(authKey, servicedef.FilterAllPets))
		t.RequireStatus(200, resp)
		pets, ok := resp.Pets()
		require.True(t, ok, "response did not contain a %q array: %s", servicedef.PropPets, resp)
		assert.NotEmpty(t, pets, "list of all pets should not be empty")
	})

	t.Run("my pets", func(t *T) {
		authKey := t.RequireAuthKey()
		resp := t.RequireResponse(t.Client().GetListOfPets(authKey, servicedef.FilterMyPets))
		t.RequireStatus(200, resp)
		_, ok := resp.Pets()
		assert.True(t, ok, "response did not contain a %q array: %s", servicedef.PropPets, resp)
	})

	t.Run("invalid key", func(t *T) {
		for _, filter := range []string{servicedef.FilterAllPets, servicedef.FilterMyPets} {
			f := filter
			t.Run(describeFilter(f), func(t *T) {
				resp := t.RequireResponse(t.Client().GetListOfPets(t.Config().Invalid.Key, f))
				t.AssertStatus(403, resp)
				_, ok := resp.Pets()
				assert.False(t, ok, "response should not contain a pet list: %s", resp)
			})
		}
	})
}

func describeFilter(filter string) string {
	if filter == "" {
		return "no filter"
	}
	return "filter " + filter
}
