/*
Package api is the gateway between the console and the EcoBlock backend.

# Overview

A single Client wraps every outbound HTTP call with:
  - Accept and Content-Type header management
  - Authorization header injection from the session store
  - uniform decoding of {error, code} failure bodies, with raw-text fallback
  - exactly-one error toast per failed exchange via the Notifier
  - busy tracking (one Track token per request)
  - best-effort audit recording via the Recorder

# Auth interception

Responses carrying the missing_token or invalid_token codes invalidate the
session centrally: the client clears the token store and fires the
OnAuthFailure hook so the router can drop back to the login screen. Pages
never handle auth failures themselves.

# Resource operations

Typed wrappers cover the backend surface:

	Login(ctx, username, password) -> token
	ListBlocks(ctx)
	ListBlogs(ctx, page, perPage, q)
	CreateBlog / UpdateBlog / DeleteBlog
	ListUsers / CreateUser / CreateAdmin / GrantAdmin
	Upload(ctx, path, onProgress)

List decoding is tolerant of the shapes the backend has shipped over time:
bare arrays, {items: [...]}, and {blocks: [...]}.

# Error contract

On failure every operation returns a non-nil error (usually *Error) after
the Notifier has been informed. Callers check the error and leave their own
state untouched; they never toast again.
*/
package api
