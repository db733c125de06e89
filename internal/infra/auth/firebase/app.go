// Package firebase implements the auth provider and its session plumbing on
// top of the Firebase Admin SDK and the Identity Toolkit REST API. The Admin
// SDK cannot verify passwords, so credential checks go through the REST
// sign-in endpoint while identity management stays on the Admin client.
package firebase

import (
	"context"

	"ecell/config"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// NewApp initializes the Firebase app from config.
func NewApp(cfg *config.Config) (*firebase.App, error) {
	if cfg.Firebase == nil {
		return nil, errors.New("firebase config missing")
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(context.Background(), &firebase.Config{
		ProjectID: cfg.Firebase.ProjectID,
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	return app, nil
}

// NewAuthClient returns the Admin auth client for identity management.
func NewAuthClient(app *firebase.App) (*firebaseauth.Client, error) {
	client, err := app.Auth(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return client, nil
}
