package config

type App struct {
	Port          string `env:"APP_PORT" default:"8080"`
	JWTSecret     string `env:"JWT_SECRET,required"`
	Env           string `env:"APP_ENV" default:"dev"`
	AdminName     string `env:"ADMIN_NAME" default:"Librarian"`
	AdminEmail    string `env:"ADMIN_EMAIL" default:"admin@library.local"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}
