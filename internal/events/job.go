package events

// JobSubmitted is emitted when a job enters the queue.
type JobSubmitted struct {
	BaseEvent
	Inputs int  `json:"inputs"`
	DryRun bool `json:"dry_run"`
}

// JobProgress is emitted before each file of a job is processed.
type JobProgress struct {
	BaseEvent
	Current     int     `json:"current"`
	Total       int     `json:"total"`
	Percent     float64 `json:"percent"`
	CurrentFile string  `json:"current_file,omitempty"`
}

// JobFile is emitted when a file's outcome is recorded.
type JobFile struct {
	BaseEvent
	Original    string `json:"original"`
	Destination string `json:"destination,omitempty"`
	Success     bool   `json:"success"`
	Conflict    bool   `json:"conflict,omitempty"`
	DryRun      bool   `json:"dry_run"`
	Error       string `json:"error,omitempty"`
}

// JobFinished is emitted once a job reaches a terminal status.
type JobFinished struct {
	BaseEvent
	Status    string `json:"status"`
	Renamed   int    `json:"renamed"`
	Errors    int    `json:"errors"`
	Conflicts int    `json:"conflicts"`
	Error     string `json:"error,omitempty"`
	Duration  int64  `json:"duration_ms"`
}

// FileRenamed is emitted after a file was moved or copied on disk.
type FileRenamed struct {
	BaseEvent
	Original    string `json:"original"`
	Destination string `json:"destination"`
	Operation   string `json:"operation"`
}

// FileUndone is emitted when a history entry is undone or redone.
type FileUndone struct {
	BaseEvent
	From string `json:"from"`
	To   string `json:"to"`
	Redo bool   `json:"redo,omitempty"`
}
