package httpapi

import (
	"net/http"

	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

// NewRouter wires routes and middleware. A nil metricsHandler leaves /metrics unregistered.
func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	metricsHandler http.Handler,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, metricsHandler)
	registerGameRoutes(mux, handler, verifier)
	registerLeagueRoutes(mux, handler, verifier)
	registerSubmissionRoutes(mux, handler, verifier)
	registerStandingsRoutes(mux, handler, verifier)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}
