// Package generation contains the retryable content-generation core: the
// quality classifier that decides whether an LLM-produced research brief is
// acceptable, the retry orchestrator that drives generation attempts with
// backoff, and the deterministic fallback used when every attempt fails.
// It also defines the Generator interfaces that abstract the external AI/LLM
// services, allowing the application to generate research briefs and articles
// without coupling to specific providers.
package generation
