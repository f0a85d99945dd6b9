package peekapi

// Version is the SDK version sent in the x-apidash-sdk header as
// "go/<Version>" on every ingestion request.
const Version = "0.1.0"
