package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/DocRouter/internal/adapter/utils"
	"github.com/akolanti/DocRouter/internal/handlers"
	"github.com/akolanti/DocRouter/internal/metrics"
	"github.com/akolanti/DocRouter/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
	id           string
}

var GetHandler = Wrap(handlers.GetHandler)

var ProcessHandler = Wrap(handlers.ProcessHandler)
var ProcessAsyncHandler = Wrap(handlers.ProcessAsyncHandler)
var GetStatusHandler = Wrap(handlers.GetStatusHandler)
var GetMemoryHandler = Wrap(handlers.GetMemoryHandler)
var GetHistoryHandler = Wrap(handlers.GetHistoryHandler)
var PatchMemoryHandler = Wrap(handlers.PatchMemoryHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
		} else {
			next(rec, re.req)
		}

		//pattern is known only after chi has routed the request
		metrics.HttpRequestsTotal.WithLabelValues(utils.GetRoutePattern(r), strconv.Itoa(rec.Status)).Inc()
	}
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re.logger.Debug("New request received")

	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	return rateLimiter(re)
}
