// Package gemini provides an implementation of the generation.BriefGenerator
// interface that uses Google's Gemini API for producing research briefs.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's generation core to Google's external Gemini AI
// service. It translates between brief requests and the Gemini API without
// exposing the details of the external service to the core application.
//
// Key components:
//
// 1. BriefGenerator:
//   - Implements the generation.BriefGenerator interface
//   - Handles communication with the Gemini API
//   - Maps API responses and token usage onto generation.Brief
//
// 2. Prompt Management:
//   - Builds the research brief prompt from an embedded template
//   - Substitutes the request fields into the template
//
// 3. Error Handling:
//   - Categorizes and translates API errors to application-specific errors
//   - Surfaces every failure to the caller; the retry policy lives in the
//     generation orchestrator, not here
package gemini
