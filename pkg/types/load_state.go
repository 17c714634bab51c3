package types

type LoadPhase string

const (
	PhaseIdle    LoadPhase = "idle"
	PhaseLoading LoadPhase = "loading"
	PhaseSuccess LoadPhase = "success"
	PhaseError   LoadPhase = "error"
)

func (p LoadPhase) IsTerminal() bool {
	return p == PhaseSuccess || p == PhaseError
}

type FetchMode string

const (
	// FetchStatic serves the snapshot written at build time.
	FetchStatic FetchMode = "static"
	// FetchServer fetches before the first page response.
	FetchServer FetchMode = "server"
	// FetchClient starts the fetch at mount and reports loading until it completes.
	FetchClient FetchMode = "client"
)
