package relais

// RelaisVersion is the version of the application, exposed by the /status endpoint
const RelaisVersion = "0.1.0"
