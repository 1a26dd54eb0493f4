package domain

// EngineConfig is the core's input record (spec.md §6). Loading this from a
// config file on disk is out of scope (spec.md §1); callers construct it
// directly, or decode it from a map via internal/config.FromMap.
type EngineConfig struct {
	// Exclude is appended to the default exclusion glob list (§4.1).
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" mapstructure:"exclude"`

	// Workers is the parse-stage worker count; 0 means
	// min(runtime.GOMAXPROCS(0), 8) (§5).
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty" mapstructure:"workers"`

	// DynamicPatterns are globs marking files as dynamic entries (§4.4.13).
	DynamicPatterns []string `json:"dynamic_patterns,omitempty" yaml:"dynamic_patterns,omitempty" mapstructure:"dynamic_patterns"`

	// DIDecorators extends the default DI decorator/annotation list (§4.4.4).
	DIDecorators []string `json:"di_decorators,omitempty" yaml:"di_decorators,omitempty" mapstructure:"di_decorators"`

	// DIContainerPatterns are regexes for container-access detection (§4.4.5).
	DIContainerPatterns []string `json:"di_container_patterns,omitempty" yaml:"di_container_patterns,omitempty" mapstructure:"di_container_patterns"`

	// DynamicPackageFields are package.json field names probed recursively
	// for dynamically-loaded modules (§4.4.14).
	DynamicPackageFields []string `json:"dynamic_package_fields,omitempty" yaml:"dynamic_package_fields,omitempty" mapstructure:"dynamic_package_fields"`

	// GeneratedPatterns mark files as generated (§4.4 / §6).
	GeneratedPatterns []string `json:"generated_patterns,omitempty" yaml:"generated_patterns,omitempty" mapstructure:"generated_patterns"`

	// ExcludeGenerated drops generated-pattern matches from the scan entirely.
	ExcludeGenerated bool `json:"exclude_generated,omitempty" yaml:"exclude_generated,omitempty" mapstructure:"exclude_generated"`

	// MonthlyTrafficGB feeds the dead-file cost-impact estimate (§4.7).
	MonthlyTrafficGB float64 `json:"monthly_traffic_gb,omitempty" yaml:"monthly_traffic_gb,omitempty" mapstructure:"monthly_traffic_gb"`

	// DisableGitHistory skips git-history enrichment even when git is
	// available, useful for tests and for repos without a .git directory.
	DisableGitHistory bool `json:"disable_git_history,omitempty" yaml:"disable_git_history,omitempty" mapstructure:"disable_git_history"`
}

// DefaultDIDecorators is the default DI decorator/annotation catalogue
// (spec.md §4.4.4), mirroring the teacher's own DefaultXConfig() idiom
// (internal/config/config.go).
var DefaultDIDecorators = []string{
	"Controller", "Module", "Injectable", "Service", "Resolver",
	"Get", "Post", "Put", "Patch", "Delete", "Options", "Head",
	"Entity", "Component", "RestController", "Configuration", "Repository",
	"SpringBootApplication", "ApplicationScoped", "RequestScoped",
	"Path", "WebServlet", "Options_Vue", "ApiController",
}

// DefaultDIContainerPatterns is the default set of regex patterns for
// DI-container-reference detection (spec.md §4.4.5).
var DefaultDIContainerPatterns = []string{
	`Container\.get\(`,
	`container\.resolve<`,
	`container\.resolve\(`,
	`moduleRef\.get\(`,
	`services\.AddScoped<`,
	`services\.AddSingleton<`,
	`services\.AddTransient<`,
	`services\.AddMiddleware<`,
}

// DefaultDynamicPackageFields is the default package.json dynamic-field
// catalogue (spec.md §4.4.14).
var DefaultDynamicPackageFields = []string{"nodes", "plugins", "credentials", "extensions", "adapters", "connectors"}

// DefaultEngineConfig returns an EngineConfig with the defaults spec.md
// names throughout §4 and §6.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Workers:              0,
		DIDecorators:         append([]string(nil), DefaultDIDecorators...),
		DIContainerPatterns:  append([]string(nil), DefaultDIContainerPatterns...),
		DynamicPackageFields: append([]string(nil), DefaultDynamicPackageFields...),
		ExcludeGenerated:     true,
		MonthlyTrafficGB:     100,
	}
}
