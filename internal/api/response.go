package api

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// Every response carries JSON content and the permissive CORS header the
// frontend relies on, error paths included.
func baseHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

// JSON shapes a success (or already-translated error) response.
func JSON(status int, body any) (events.APIGatewayProxyResponse, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    baseHeaders(),
			Body:       `{"error":"Internal server error"}`,
		}, nil
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    baseHeaders(),
		Body:       string(b),
	}, nil
}

// Error responds with a bare {error} body.
func Error(status int, errMsg string) (events.APIGatewayProxyResponse, error) {
	return JSON(status, map[string]string{"error": errMsg})
}

// ErrorMessage responds with {error, message}; message carries the raw
// failure description for diagnostics.
func ErrorMessage(status int, errMsg, message string) (events.APIGatewayProxyResponse, error) {
	return JSON(status, map[string]string{"error": errMsg, "message": message})
}

// Unauthorized responds with the {error, detail} shape used for
// auth-context failures.
func Unauthorized(detail string) (events.APIGatewayProxyResponse, error) {
	return JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized", "detail": detail})
}
