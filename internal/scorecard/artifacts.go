package scorecard

import enginereport "github.com/webcomponents/custom-elements-everywhere/internal/report"

const stdoutPath = "-"

func DefaultChecksumsPath(outJSONPath string) string {
	return enginereport.DefaultChecksumsPath(outJSONPath)
}

func DefaultRunLogPath(outJSONPath string) string {
	return enginereport.DefaultRunLogPath(outJSONPath)
}

func writeArtifactChecksums(checksumsPath string, artifactPaths []string) error {
	return enginereport.WriteChecksums(checksumsPath, artifactPaths)
}

func writeReportJSON(path string, r Report) error {
	return enginereport.WriteJSON(path, r)
}

func writeReportHTML(path string, page []byte) error {
	return enginereport.WriteFile(path, page)
}

func isStdout(path string) bool {
	return path == "" || path == stdoutPath
}
