package tokeninspect

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID      = "X-Request-ID"
	headerTokenStatus    = "X-Token-Status"
	headerTokenExpiresAt = "X-Token-Expires-At"
)

// ExpiryDiagnostics returns a Gin middleware that inspects the bearer token of
// each request and stores the Report in the request context. It never
// rejects a request; handlers decide what to do with GetReport.
func ExpiryDiagnostics(insp *Inspector) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx := WithRequestID(c.Request.Context(), requestID)

		var report Report
		token, err := extractToken(c.Request, insp.cookieName)
		if err != nil {
			report = insp.failed(ctx, "http", err)
		} else {
			report = insp.InspectToken(ctx, "http", token)
		}

		c.Request = c.Request.WithContext(WithReport(ctx, report))
		c.Header(headerTokenStatus, report.Status.String())
		if report.Present() {
			c.Header(headerTokenExpiresAt, report.ExpiresAtString())
		}

		c.Next()
	}
}

// StatusHandler serves the Report for the token held in the inspector's store.
// A store that cannot be read answers 503; every other outcome is 200 since
// an absent or expired token is a fact, not a server failure.
func StatusHandler(insp *Inspector) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if _, ok := GetRequestID(ctx); !ok {
			requestID := c.GetHeader(headerRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			ctx = WithRequestID(ctx, requestID)
		}

		report := insp.Inspect(ctx)

		status := http.StatusOK
		if report.Status == StatusUnavailable {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, buildReportResponse(report))
	}
}

// buildReportResponse renders the five inspection facts as JSON.
// Claims and times are only included once the token has been decoded.
func buildReportResponse(report Report) gin.H {
	response := gin.H{
		"status": report.Status.String(),
		"source": report.Source,
		"now":    report.NowString(),
	}

	if report.Algorithm != "" {
		response["algorithm"] = report.Algorithm
	}

	if report.Present() {
		response["claims"] = report.Claims
		response["expires_at"] = report.ExpiresAtString()
		response["expired"] = report.Expired
		response["verified"] = report.Verified
		if report.VerifyErr != nil {
			response["verify_error"] = errorBody(report.VerifyErr)
		}
	}

	if report.Err != nil {
		response["error"] = errorBody(report.Err)
	}

	return response
}

func errorBody(err error) gin.H {
	body := gin.H{"message": err.Error()}
	if code := CodeOf(err); code != "" {
		body["code"] = string(code)
	}
	return body
}
