package rpc

const (
	GatewayServiceName   = "stackquery.Gateway"
	DocumentsServiceName = "stackquery.Documents"
)

// Full method names, as seen by interceptors.
const (
	GatewayCreateUser      = "/" + GatewayServiceName + "/CreateUser"
	GatewayCreateSession   = "/" + GatewayServiceName + "/CreateEmailPasswordSession"
	GatewayGetSession      = "/" + GatewayServiceName + "/GetSession"
	GatewayGetUser         = "/" + GatewayServiceName + "/GetUser"
	GatewayUpdatePrefs     = "/" + GatewayServiceName + "/UpdatePrefs"
	GatewayDeleteSessions  = "/" + GatewayServiceName + "/DeleteSessions"
	GatewayCreateJWT       = "/" + GatewayServiceName + "/CreateJWT"
	DocumentsCreate        = "/" + DocumentsServiceName + "/CreateDocument"
	DocumentsGet           = "/" + DocumentsServiceName + "/GetDocument"
	DocumentsList          = "/" + DocumentsServiceName + "/ListDocuments"
	DocumentsPresignUpload = "/" + DocumentsServiceName + "/PresignAttachment"
)
