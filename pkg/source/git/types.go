package git

import "time"

// CommitInfo describes a commit of the library repository.
type CommitInfo struct {
	SHA        string    `json:"sha" yaml:"sha"`
	Author     string    `json:"author" yaml:"author"`
	Email      string    `json:"email" yaml:"email"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Message    string    `json:"message" yaml:"message"`
	Branch     string    `json:"branch" yaml:"branch"`
	Repository string    `json:"repository" yaml:"repository"`
}

// PullResult reports what a pull changed.
type PullResult struct {
	FromSHA      string   `json:"from_sha" yaml:"from_sha"`
	ToSHA        string   `json:"to_sha" yaml:"to_sha"`
	HadChanges   bool     `json:"had_changes" yaml:"had_changes"`
	ChangedFiles []string `json:"changed_files,omitempty" yaml:"changed_files,omitempty"`

	// Libraries are the library folders, as absolute paths, that contain
	// a changed declaration or descriptor file.
	Libraries []string `json:"libraries,omitempty" yaml:"libraries,omitempty"`
}

// RepositoryMetrics tracks Git operation counters.
type RepositoryMetrics struct {
	CloneDuration   time.Duration `json:"clone_duration" yaml:"clone_duration"`
	PullDuration    time.Duration `json:"pull_duration" yaml:"pull_duration"`
	LastCommitSHA   string        `json:"last_commit_sha" yaml:"last_commit_sha"`
	LastPullTime    time.Time     `json:"last_pull_time" yaml:"last_pull_time"`
	FailedPulls     int64         `json:"failed_pulls" yaml:"failed_pulls"`
	SuccessfulPulls int64         `json:"successful_pulls" yaml:"successful_pulls"`
}
