package event

// HeaderCorrelationID carries the correlation id of the publishing request.
const HeaderCorrelationID = "cID"
