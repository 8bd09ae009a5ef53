package config

const (
	defaultRepoPath        = "."
	defaultBranch          = "main"
	defaultMetadataFile    = "module.prop"
	defaultFeedFile        = "update.json"
	defaultChangelogFile   = "CHANGELOG.md"
	defaultReadmeFile      = "README.md"
	defaultAssetName       = "install.zip"
	defaultCommitTemplate  = "release: %s"
	defaultAPIBase         = "https://api.github.com"
	defaultUploadBase      = "https://uploads.github.com"
	defaultTokenEnv        = "RELEASE_TOKEN"
	defaultPublishTimeout  = 60
	defaultJournalDir      = "~/.local/share/shipwright"
	defaultNotifyTimeout   = 10
	defaultLogFormat       = "text"
	defaultLogLevel        = "info"
	defaultExcludeListFile = ".releaseignore"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Repo: Repo{
			Path:          defaultRepoPath,
			Branch:        defaultBranch,
			MetadataFile:  defaultMetadataFile,
			FeedFile:      defaultFeedFile,
			ChangelogFile: defaultChangelogFile,
			ReadmeFile:    defaultReadmeFile,
		},
		Release: Release{
			AssetName:      defaultAssetName,
			ExcludeLists:   []string{defaultExcludeListFile},
			CommitTemplate: defaultCommitTemplate,
			Push:           true,
		},
		Publish: Publish{
			APIBase:        defaultAPIBase,
			UploadBase:     defaultUploadBase,
			TokenEnv:       defaultTokenEnv,
			RequestTimeout: defaultPublishTimeout,
		},
		Journal: Journal{
			Dir: defaultJournalDir,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
