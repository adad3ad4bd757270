package fail

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatus_EveryKindMapsToOneClass(t *testing.T) {
	cases := map[Kind]int{
		KindLoginFailed:        http.StatusUnauthorized,
		KindNotAuthorized:      http.StatusUnauthorized,
		KindInvalidJSON:        http.StatusBadRequest,
		KindRegistrationFailed: http.StatusBadRequest,
		KindInvalidToken:       http.StatusBadRequest,
		KindInvalidEmail:       http.StatusBadRequest,
		KindInvalidPassword:    http.StatusBadRequest,
		KindExpiredToken:       http.StatusBadRequest,
		KindDatabase:           http.StatusInternalServerError,
		KindMissingEnvVar:      http.StatusInternalServerError,
		KindEmailSendFailed:    http.StatusInternalServerError,
		KindEmailNotFound:      http.StatusInternalServerError,
		KindInternal:           http.StatusInternalServerError,
	}
	for kind, want := range cases {
		require.Equal(t, want, HTTPStatus(kind), "kind %d", kind)
	}
}

func TestClientMessage_HidesServerErrors(t *testing.T) {
	require.Equal(t, GenericMessage, ClientMessage(Database(errors.New("pq: connection refused"))))
	require.Equal(t, GenericMessage, ClientMessage(Internal(errors.New("nil pointer"))))
	require.Equal(t, GenericMessage, ClientMessage(errors.New("raw error")))

	require.Equal(t, "Invalid Password: must contain a symbol", ClientMessage(InvalidPassword("must contain a symbol")))
	require.Equal(t, "Not authorized. Please login", ClientMessage(NotAuthorized()))
}

func TestExpiredToken_CarriesSubject(t *testing.T) {
	err := ExpiredToken("user@example.com")
	fe, ok := As(err)
	require.True(t, ok)
	require.Equal(t, KindExpiredToken, fe.Kind)
	require.Equal(t, "user@example.com", fe.Subject)
}

func TestAs_UnwrapsThroughChains(t *testing.T) {
	err := fmt.Errorf("handler: %w", LoginFailed())
	require.True(t, Is(err, KindLoginFailed))
	require.False(t, Is(err, KindNotAuthorized))
}

func TestCoerce_WrapsForeignErrors(t *testing.T) {
	fe := Coerce(errors.New("boom"))
	require.Equal(t, KindInternal, fe.Kind)
	require.Equal(t, GenericMessage, fe.Message)

	orig := InvalidToken()
	require.Same(t, orig, error(Coerce(orig)))
	require.Nil(t, Coerce(nil))
}
