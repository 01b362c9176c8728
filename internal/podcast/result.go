package podcast

// Kind classifies why a call did not succeed.
type Kind string

const (
	// KindNone marks a successful result.
	KindNone Kind = ""
	// KindServerReported means the backend answered with success=false.
	KindServerReported Kind = "server_reported"
	// KindNetwork means the request failed before a usable response was read.
	KindNetwork Kind = "network"
	// KindHTTPStatus means the backend answered with a non-2xx status.
	KindHTTPStatus Kind = "http_status"
	// KindSave means the audio was fetched but the saver rejected it.
	KindSave Kind = "save"
)

// Fixed messages used when there is nothing better to show the user.
const (
	MsgGenerateFailed = "Failed to generate podcast"
	MsgNetworkFailed  = "Network request failed, please check that the server is running"
	MsgDownloadFailed = "Download failed"
)

// GenerateResult is the outcome of GeneratePodcast.
// When Success is false, Error is always a non-empty message.
type GenerateResult struct {
	Success     bool   `json:"success"`
	AudioURL    string `json:"audioUrl,omitempty"`
	AudioFile   string `json:"audioFile,omitempty"`
	PodcastType string `json:"podcastType,omitempty"`
	Error       string `json:"error,omitempty"`
	Kind        Kind   `json:"-"`
}

// DownloadResult is the outcome of DownloadPodcast.
// When Success is false, Error is always a non-empty message.
type DownloadResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Kind    Kind   `json:"-"`
}

func generateFailure(kind Kind, msg string) GenerateResult {
	return GenerateResult{Success: false, Error: msg, Kind: kind}
}

func downloadFailure(kind Kind) DownloadResult {
	return DownloadResult{Success: false, Error: MsgDownloadFailed, Kind: kind}
}
