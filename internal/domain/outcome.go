package domain

// Outcome is the result of an online install step. The offline fallback is
// chosen from it explicitly rather than from a recovered error.
type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	OutcomeNetworkUnavailable
	OutcomeExtractionFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeNetworkUnavailable:
		return "network unavailable"
	case OutcomeExtractionFailed:
		return "extraction failed"
	default:
		return "unknown"
	}
}

// NeedsFallback reports whether the offline payload should be used.
func (o Outcome) NeedsFallback() bool {
	return o != OutcomeSucceeded
}

// OutcomeFor converts the error of an online step into an Outcome.
func OutcomeFor(err error) Outcome {
	switch Classify(err) {
	case FailureNone:
		return OutcomeSucceeded
	case FailureNetwork:
		return OutcomeNetworkUnavailable
	default:
		return OutcomeExtractionFailed
	}
}

// TransferMode tells the user whether a component is fetched for the first
// time or refreshed.
type TransferMode int

const (
	TransferDownload TransferMode = iota
	TransferUpdate
	TransferInstall
)

func (m TransferMode) String() string {
	switch m {
	case TransferDownload:
		return "download"
	case TransferUpdate:
		return "update"
	case TransferInstall:
		return "install"
	default:
		return "unknown"
	}
}
