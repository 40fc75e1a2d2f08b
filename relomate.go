// Package relomate provides a local chat assistant for apartment relocation
// decisions. It loads a static dataset of U.S. metro rental statistics,
// classifies free-text questions into a small set of query intents
// (cheapest metros, budget filtering, rent trends, metro comparison), runs
// the corresponding lookup over the in-memory table, and optionally passes
// the computed answer through a text-generation model for prose polish.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., csv/, gemini/, gin/).
package relomate
