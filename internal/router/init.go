package router

import (
	app "github.com/ryjtoh/mydevduck-api/internal/application"
	"github.com/ryjtoh/mydevduck-api/internal/container"
	pginfra "github.com/ryjtoh/mydevduck-api/internal/infrastructure/postgres"
	"github.com/ryjtoh/mydevduck-api/internal/infrastructure/redisstore"
	handlers "github.com/ryjtoh/mydevduck-api/internal/interface/http"
	"github.com/ryjtoh/mydevduck-api/internal/router/modules"
)

type AuthModuleDeps struct {
	Attempts *app.LoginAttemptService
	Service  *app.AuthService
	Handler  *handlers.AuthHandler
}

type PetModuleDeps struct {
	Service *app.PetService
	Handler *handlers.PetHandler
}

type ActivityModuleDeps struct {
	Service *app.ActivityService
	Handler *handlers.ActivityHandler
}

func buildAuthDeps() AuthModuleDeps {
	cfg := container.GetConfig()
	users := pginfra.NewUserRepository(container.GetPGPool())

	attempts := app.NewLoginAttemptService(
		redisstore.NewAttemptStore(container.GetRedis()),
		cfg.LoginMaxAttempts,
		cfg.LoginLockoutWindow,
		container.GetLogger(),
	)

	service := app.NewAuthService(
		users,
		container.GetJWT(),
		attempts,
		container.GetLogger(),
	)

	handler := handlers.NewAuthHandler(
		service,
		attempts,
		container.GetJWT(),
		container.GetLogger(),
	)

	return AuthModuleDeps{Attempts: attempts, Service: service, Handler: handler}
}

func buildPetDeps() PetModuleDeps {
	pets := pginfra.NewPetRepository(container.GetPGPool())
	users := pginfra.NewUserRepository(container.GetPGPool())

	service := app.NewPetService(
		pets,
		users,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
	)

	handler := handlers.NewPetHandler(service, container.GetLogger())

	return PetModuleDeps{Service: service, Handler: handler}
}

func buildActivityDeps() ActivityModuleDeps {
	activities := pginfra.NewActivityRepository(container.GetPGPool())
	users := pginfra.NewUserRepository(container.GetPGPool())

	service := app.NewActivityService(
		activities,
		users,
		container.GetJWT(),
		container.GetLogger(),
	)

	handler := handlers.NewActivityHandler(service, container.GetLogger())

	return ActivityModuleDeps{Service: service, Handler: handler}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	authDeps := buildAuthDeps()
	r.Add(modules.NewAuthModule(authDeps.Handler, container.GetJWT()))

	petDeps := buildPetDeps()
	r.Add(modules.NewPetModule(petDeps.Handler))

	activityDeps := buildActivityDeps()
	r.Add(modules.NewActivityModule(activityDeps.Handler))
}
