package errors

import "net/http"

var (
	ErrTraceMalformed = New(
		"TRACE_MALFORMED",
		"Trace file could not be parsed",
		http.StatusUnprocessableEntity,
	)

	ErrCityNotResolved = New(
		"CITY_NOT_RESOLVED",
		"No city could be resolved for the trace start point",
		http.StatusUnprocessableEntity,
	)

	ErrTraceAlreadyImported = New(
		"TRACE_ALREADY_IMPORTED",
		"A hike with this filename already exists",
		http.StatusConflict,
	)

	ErrInvalidExtension = New(
		"INVALID_EXTENSION",
		"Only .gpx files are accepted",
		http.StatusBadRequest,
	)

	ErrHikeNotFound = New(
		"HIKE_NOT_FOUND",
		"Hike not found",
		http.StatusNotFound,
	)

	ErrCityNotFound = New(
		"CITY_NOT_FOUND",
		"City not found",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrDocumentStoreError = New(
		"DOCUMENT_STORE_ERROR",
		"Document store operation failed",
		http.StatusInternalServerError,
	)

	ErrSourceUnavailable = New(
		"SOURCE_UNAVAILABLE",
		"External enrichment source is unavailable",
		http.StatusBadGateway,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
