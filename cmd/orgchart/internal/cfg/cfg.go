// Package cfg contains common configuration variables.
package cfg

import (
	"flag"
	"log/slog"
	"os"

	"github.com/rusq/osenv/v2"

	"github.com/rbacmatcher/orgchart/internal/agent"
	"github.com/rbacmatcher/orgchart/internal/mcp"
	"github.com/rbacmatcher/orgchart/internal/orgdata"
	"github.com/rbacmatcher/orgchart/internal/osext"
	"github.com/rbacmatcher/orgchart/internal/resolve"
)

const DefDataDir = "/data"

var (
	TraceFile   string
	LogFile     string
	JSONHandler bool
	Verbose     bool

	DataDir         string
	OutputDir       string
	Sheet           string
	EmployeeColumns StringSlice
	ManagerColumns  StringSlice
	Threshold       float64

	ListenAddr string

	LLM agent.Config

	Log = slog.Default()
)

type FlagMask int

const (
	DefaultFlags  FlagMask = 0
	OmitDataFlags FlagMask = 1 << iota
	OmitOutputFlag
	OmitLLMFlags
	OmitListenFlag

	OmitAll = OmitDataFlags |
		OmitOutputFlag |
		OmitLLMFlags |
		OmitListenFlag
)

// SetBaseFlags sets base flags
func SetBaseFlags(fs *flag.FlagSet, mask FlagMask) {
	fs.StringVar(&TraceFile, "trace", osenv.Value("TRACE_FILE", ""), "trace `filename`")
	fs.StringVar(&LogFile, "log", osenv.Value("LOG_FILE", ""), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&JSONHandler, "log-json", osenv.Value("JSON_LOG", false), "log messages in JSON format")
	fs.BoolVar(&Verbose, "v", osenv.Value("DEBUG", false), "verbose messages")

	if mask&OmitDataFlags == 0 {
		fs.StringVar(&DataDir, "data", osenv.Value("DATA_DIR", DefDataDir), "spreadsheet `directory`, searched before the application\nand the working directories")
		fs.StringVar(&Sheet, "sheet", osenv.Value("SHEET", ""), "worksheet `name`, the first worksheet is used if empty")
		EmployeeColumns = StringSlice(orgdata.DefEmployeeColumns)
		fs.Var(&EmployeeColumns, "employee-columns", "comma separated employee column `names`, first match wins")
		ManagerColumns = StringSlice(orgdata.DefManagerColumns)
		fs.Var(&ManagerColumns, "manager-columns", "comma separated manager column `names`, first match wins")
		fs.Float64Var(&Threshold, "threshold", resolve.DefThreshold, "minimum file name similarity, (0, 1]")
	}
	if mask&OmitOutputFlag == 0 {
		fs.StringVar(&OutputDir, "o", osenv.Value("OUTPUT_DIR", ""), "chart output `directory`, if not specified, charts are written\nnext to the spreadsheet")
	}
	if mask&OmitLLMFlags == 0 {
		fs.StringVar(&LLM.APIKey, "api-key", osenv.Secret("OPENAI_API_KEY", ""), "model API `key` (environment: OPENAI_API_KEY)")
		fs.StringVar(&LLM.BaseURL, "base-url", osenv.Value("BASE_URL", ""), "model API base `URL`, or the Azure OpenAI endpoint")
		fs.StringVar(&LLM.APIVersion, "api-version", osenv.Value("API_VERSION", ""), "Azure OpenAI API `version`, enables Azure mode")
		fs.StringVar(&LLM.Model, "model", osenv.Value("MODEL", "gpt-4o"), "`model` or Azure deployment name")
		fs.StringVar(&LLM.AuthHeader, "auth-header", osenv.Value("AUTH_HEADER", ""), "additional `header` that carries the API key")
		fs.StringVar(&LLM.UserAgent, "user-agent", osenv.Value("USER_AGENT", ""), "User-Agent `value` for model requests")
	}
	if mask&OmitListenFlag == 0 {
		fs.StringVar(&ListenAddr, "listen", osenv.Value("MCP_LISTEN", mcp.DefListenAddr), "`address` to listen on when -transport=http")
	}
}

// SetDebugLevel enables debug messages of the default logger.
func SetDebugLevel() {
	slog.SetLogLoggerLevel(slog.LevelDebug)
}

// SearchDirs returns the directories searched for spreadsheets, in order:
// the data directory, the application directory and the working directory.
func SearchDirs() []string {
	dirs := []string{DataDir}
	if exe := osext.ExeDir(); exe != "" {
		dirs = append(dirs, exe)
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	return dirs
}

// ExtractOptions returns the column mapping.
func ExtractOptions() orgdata.Options {
	return orgdata.Options{
		EmployeeColumns: EmployeeColumns,
		ManagerColumns:  ManagerColumns,
		Sheet:           Sheet,
	}
}
