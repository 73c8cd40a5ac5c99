// Package client is the transport to the BiteBoxd HTTP API.
//
// # Overview
//
// AuthAPI and RecipeAPI describe the backend contract; HTTPClient implements
// both over JSON/HTTP:
//
//	POST   /auth/login            LoginRequest      -> AuthResponse
//	POST   /auth/register         RegisterRequest   -> (ignored)
//	GET    /recipes                                 -> RecipePage
//	GET    /recipes/{id}                            -> Recipe
//	POST   /recipes               RecipePayload     -> Recipe
//	PUT    /recipes/{id}          RecipePayload
//	DELETE /recipes/{id}
//	GET    /feed?limit&offset&q.. FeedQuery         -> RecipePage
//	POST   /recipes/{id}/photo    multipart "file"  -> PhotoResult
//
// Every request carries an X-Request-ID and, when the token source returns
// a non-empty token, an "Authorization: Bearer" header.
//
// # Error Handling
//
// Network failures wrap ErrUnavailable. Non-2xx responses become *APIError,
// which unwraps to ErrUnauthorized (401/403), ErrNotFound (404) or
// ErrUnavailable (502/503/504). Nothing is retried.
package client
