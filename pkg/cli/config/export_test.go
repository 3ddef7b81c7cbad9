package config

func NewLogger(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

func NewRepository(backend, projectID, databaseID string) *Repository {
	return &Repository{backend: backend, projectID: projectID, databaseID: databaseID}
}

func NewLabels(path string) *Labels {
	return &Labels{path: path}
}
