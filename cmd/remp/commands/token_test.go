package commands

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/remp-client/internal/constants"
)

func TestDecodeClaims(t *testing.T) {
	t.Parallel()

	t.Run("jwt", func(t *testing.T) {
		t.Parallel()

		expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "42",
			"exp": expires.Unix(),
		}).SignedString([]byte("signing-key"))
		require.NoError(t, err)

		claims, err := decodeClaims(token)
		require.NoError(t, err)
		assert.Equal(t, "42", claims["sub"])
		assert.Equal(t, "2030-01-02T03:04:05Z", formatClaim("exp", claims["exp"]))
	})

	t.Run("opaque token", func(t *testing.T) {
		t.Parallel()

		_, err := decodeClaims("5f4dcc3b5aa765d61d8327deb882cf99")
		require.ErrorIs(t, err, constants.ErrInvalidJWTFormat)
	})
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Empty(t, formatValue(nil))
	assert.Equal(t, "plain", formatValue("plain"))
	assert.Equal(t, "7", formatValue(float64(7)))
	assert.Equal(t, `{"id":7}`, formatValue(map[string]interface{}{"id": 7}))
	assert.Equal(t, `[1,"a"]`, formatValue([]interface{}{1, "a"}))
}

//nolint:paralleltest // viper is global state
func TestTokenCommand_JWTClaims(t *testing.T) {
	crm := newFakeCRM(t)
	setupCLI(t, crm.URL)
	viper.Set(KeyOutput, constants.FormatTable)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42"}).SignedString([]byte("k"))
	require.NoError(t, err)

	crm.respond(constants.UsersPath+"login", http.StatusOK, `{"status":"ok","access":{"token":"`+token+`"}}`)

	_, err = runCommand(NewLoginCommand(), "", "--email", "a@b.c", "--password", "secret")
	require.NoError(t, err)

	output, err := runCommand(NewTokenCommand(), "")
	require.NoError(t, err)
	assert.Contains(t, output, "claim:sub")
	assert.NotContains(t, output, token)

	viper.Set(KeyOutput, constants.FormatJSON)

	output, err = runCommand(NewTokenCommand(), "", "--reveal")
	require.NoError(t, err)

	var info TokenInfo
	require.NoError(t, json.Unmarshal([]byte(output), &info))
	assert.Equal(t, token, info.Token)
	assert.Equal(t, "42", info.Claims["sub"])
}
