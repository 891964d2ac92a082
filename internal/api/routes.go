package api

import (
	"net/http"

	"github.com/JaimeStill/courier/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(mux, domain.Intake.Routes())
	routes.Register(mux, domain.Audit.Handler().Routes())
}
