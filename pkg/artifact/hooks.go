package artifact

import (
	"context"
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/glorpus-work/apkg/internal/logger"
	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
)

// HookExecutor runs the tengo scripts a package ships.
type HookExecutor interface {
	ExecuteHook(ctx context.Context, hookPath string, hookCtx *HookContext) error
}

// HookContext is what a hook script can import as "context" and "dirs".
type HookContext struct {
	PackageName     string
	PackageVersion  string
	PreviousVersion string
	Operation       string
	InstallRoot     string
	ExtractDir      string
	Platform        string
}

// HookExecutorImpl executes hooks with the tengo standard library available.
type HookExecutorImpl struct{}

var _ HookExecutor = (*HookExecutorImpl)(nil)

// NewHookExecutor creates a new hook executor instance
func NewHookExecutor() *HookExecutorImpl {
	return &HookExecutorImpl{}
}

// ExecuteHook runs the script at hookPath until it finishes or ctx is done.
func (he *HookExecutorImpl) ExecuteHook(ctx context.Context, hookPath string, hookCtx *HookContext) error {
	scriptContent, err := os.ReadFile(hookPath)
	if err != nil {
		return fmt.Errorf("%w: failed to read hook script %s: %w", apkgErrors.ErrHookExecution, hookPath, err)
	}

	logger.Debug("Executing hook script", logger.Fields{
		"hook_path": hookPath,
		"operation": hookCtx.Operation,
		"package":   hookCtx.PackageName,
		"version":   hookCtx.PackageVersion,
	})

	moduleMap := stdlib.GetModuleMap(stdlib.AllModuleNames()...)
	moduleMap.AddBuiltinModule("context", map[string]tengo.Object{
		"package_name":     &tengo.String{Value: hookCtx.PackageName},
		"package_version":  &tengo.String{Value: hookCtx.PackageVersion},
		"previous_version": &tengo.String{Value: hookCtx.PreviousVersion},
		"operation":        &tengo.String{Value: hookCtx.Operation},
		"platform":         &tengo.String{Value: hookCtx.Platform},
	})
	moduleMap.AddBuiltinModule("dirs", map[string]tengo.Object{
		"install_root": &tengo.String{Value: hookCtx.InstallRoot},
		"extract_dir":  &tengo.String{Value: hookCtx.ExtractDir},
	})

	script := tengo.NewScript(scriptContent)
	script.SetImports(moduleMap)

	if _, err := script.RunContext(ctx); err != nil {
		return fmt.Errorf("%w: hook script execution failed for %s: %w", apkgErrors.ErrHookExecution, hookPath, err)
	}

	logger.Debug("Hook script executed successfully", logger.Fields{
		"hook_path": hookPath,
		"package":   hookCtx.PackageName,
	})
	return nil
}
