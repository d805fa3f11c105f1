package api

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ExtractResponse is the JSON body returned by the extract endpoint.
type ExtractResponse struct {
	Status              string `json:"status"`
	Payload             []byte `json:"payload"` // base64 in JSON
	PayloadLength       uint32 `json:"payload_length"`
	ECC                 bool   `json:"ecc"`
	ChecksumOK          bool   `json:"checksum_ok"`
	HeaderFromSecondary bool   `json:"header_from_secondary"`
	FailedBlocks        []int  `json:"failed_blocks,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind string
	Port int

	// MaxUploadBytes bounds multipart uploads; zero means the default.
	MaxUploadBytes int64
}

const defaultMaxUploadBytes = 64 << 20 // 64 MiB
