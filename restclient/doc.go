// Package restclient provides a typed HTTP client with blocking, callback,
// and promise execution modes, automatic JSON (de)serialization, multipart
// uploads, and an optional fixed-delay retry policy.
//
// Execution modes
//   - Blocking: Client.Get/Post/Put/Patch/Delete/Multipart return a
//     *RawResponse; the generic Get[T]/Post[T]/... helpers additionally
//     decode the body into a typed Response[T].
//   - Callback: GetAsync[T] and friends return a *Future[T]; Subscribe
//     registers a handler invoked exactly once with the outcome.
//   - Promise: Future.Wait suspends until the single result is available.
//
// Failure model
//   - Transport and decode failures never surface as returned errors; they
//     are captured on the response's Err field so a request always yields a
//     result value.
//   - Construction-time failures (nil request, invalid multipart part,
//     malformed URL, bad builder arguments) are returned synchronously.
//
// Retries
//   - Configured via Builder.WithRetryPolicy. An attempt is retried when its
//     status falls inside the policy's range, or when it failed with an
//     error kind in the policy's trigger set. The delay between attempts is
//     fixed. Exhaustion returns the last response as-is.
package restclient
