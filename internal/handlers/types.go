package handlers

// ShortenRequest is the request body for creating a short link.
type ShortenRequest struct {
	Body struct {
		URL string `doc:"Same-origin URL or relative path to shorten" example:"/page?a=1" json:"url"`
	}
}

// ShortenResponse is the response for a shorten request. Status is 201
// when a new code was allocated, 200 for an idempotent hit.
type ShortenResponse struct {
	Status int
	Body   struct {
		Code     string `doc:"The short code"             example:"0hX92kAb"     json:"code"`
		ShortURL string `doc:"Relative short link"        example:"/s/0hX92kAb" json:"short_url"`
		Path     string `doc:"The normalized stored path" example:"/page?a=1"    json:"path"`
	}
}

// RedirectRequest is the request for resolving a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"0hX92kAb" path:"code"`
}

// RedirectResponse redirects to the stored path.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The stored path" header:"Location"`
	}
}
