package pettests

import (
	"github.com/petfriends/api-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

func DoAuthenticationTests(t *T) {
	t.Run("valid credentials", func(t *T) {
		cfg := t.Config()
		resp := t.RequireResponse(t.Client().GetAPIKey(cfg.Valid.Login, cfg.Valid.Password))
		t.AssertStatus(200, resp)
		assert.True(t, resp.HasField(servicedef.PropKey), "response did not contain %q: %s", servicedef.PropKey, resp)
	})

	for _, p := range []struct {
		name            string
		login, password func(*T) string
	}{
		{
			"invalid credentials",
			func(t *T) string { return t.Config().Invalid.Login },
			func(t *T) string { return t.Config().Invalid.Password },
		},
		{
			"empty credentials",
			func(*T) string { return "" },
			func(*T) string { return "" },
		},
		{
			"valid login with invalid password",
			func(t *T) string { return t.Config().Valid.Login },
			func(t *T) string { return t.Config().Invalid.Password },
		},
	} {
		params := p
		t.Run(params.name, func(t *T) {
			resp := t.RequireResponse(t.Client().GetAPIKey(params.login(t), params.password(t)))
			t.AssertStatus(403, resp)
			assert.False(t, resp.HasField(servicedef.PropKey), "response should not contain %q: %s", servicedef.PropKey, resp)
		})
	}
}
