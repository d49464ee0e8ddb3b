// Package docs Barangay CMS API.
//
// Documentation of the Barangay Complaint Management System API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// swagger:meta
package docs

import (
	"github.com/barangaycms/barangay-cms-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /complaint/submit complaints submitComplaintID
// Files a new complaint for the logged-in resident.
// responses:
//   200: submitComplaintResponse

// The generated complaint id and confirmation message.
// swagger:response submitComplaintResponse
type submitComplaintResponseWrapper struct {
	// in:body
	Body models.SubmitComplaintResponse
}
