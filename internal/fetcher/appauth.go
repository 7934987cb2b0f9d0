package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bradleyfalzon/ghinstallation/v2"
)

// AppCredential henter et installasjonstoken for en GitHub App og
// pakker det som vanlig token-credential. Resten av pipelinen trenger
// ikke vite hvor tokenet kom fra.
func AppCredential(ctx context.Context, appID, installationID, privateKeyPath string) (Credential, error) {
	aid, err := strconv.ParseInt(appID, 10, 64)
	if err != nil {
		return Credential{}, &ValidationError{Msg: fmt.Sprintf("GITHUB_APP_ID må være et tall: %q", appID)}
	}
	iid, err := strconv.ParseInt(installationID, 10, 64)
	if err != nil {
		return Credential{}, &ValidationError{Msg: fmt.Sprintf("GITHUB_APP_INSTALLATION_ID må være et tall: %q", installationID)}
	}

	itr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, aid, iid, privateKeyPath)
	if err != nil {
		return Credential{}, fmt.Errorf("kunne ikke lese app-nøkkel: %w", err)
	}

	token, err := itr.Token(ctx)
	if err != nil {
		return Credential{}, &AuthError{Status: http.StatusUnauthorized}
	}

	return TokenCredential(token), nil
}
