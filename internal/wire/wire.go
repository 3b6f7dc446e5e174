//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"github.com/sevigo/review-warden/internal/app"
)

// InitializeApp loads configuration, connects to the database and wires the
// webhook server. The cleanup closes the database.
func InitializeApp() (*app.App, func(), error) {
	wire.Build(AppSet)
	return &app.App{}, nil, nil
}
