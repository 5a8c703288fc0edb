package cmd

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"
)

func newListServicesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "services",
		Short: "Lists the services shared through the frontend's registry",
		Long: `Scans a source tree for registry.Key[...] definitions to show which
services the friends frontend's modules can resolve at runtime.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := findRegistryKeys(dir)
			if err != nil {
				return fmt.Errorf("find registry keys: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(services) == 0 {
				fmt.Fprintln(out, "No services found in the registry.")
				return nil
			}
			return printServices(out, services)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "module root to scan")
	return cmd
}

// ServiceInfo is one registry key found in source.
type ServiceInfo struct {
	Key     string
	Type    string
	Package string
}

// findRegistryKeys loads every package under root and collects the
// package-level vars initialised with registry.Key[T]("...").
func findRegistryKeys(root string) ([]ServiceInfo, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:  root,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	var services []ServiceInfo
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				genDecl, ok := decl.(*ast.GenDecl)
				if !ok || genDecl.Tok != token.VAR {
					continue
				}
				for _, spec := range genDecl.Specs {
					valueSpec, ok := spec.(*ast.ValueSpec)
					if !ok {
						continue
					}
					for _, value := range valueSpec.Values {
						if s, ok := registryKey(pkg, value); ok {
							s.Package = pkg.PkgPath
							services = append(services, s)
						}
					}
				}
			}
		}
	}

	sort.Slice(services, func(i, j int) bool { return services[i].Key < services[j].Key })
	return services, nil
}

// registryKey reports whether expr is a registry.Key conversion and
// extracts its name and type argument.
func registryKey(pkg *packages.Package, expr ast.Expr) (ServiceInfo, bool) {
	call, ok := expr.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return ServiceInfo{}, false
	}

	// One type argument parses as IndexExpr, several as IndexListExpr.
	var typeArg ast.Expr
	switch fun := call.Fun.(type) {
	case *ast.IndexExpr:
		typeArg = fun.Index
	case *ast.IndexListExpr:
		if len(fun.Indices) != 1 {
			return ServiceInfo{}, false
		}
		typeArg = fun.Indices[0]
	default:
		return ServiceInfo{}, false
	}

	if pkg.TypesInfo == nil {
		return ServiceInfo{}, false
	}
	named, ok := pkg.TypesInfo.TypeOf(call.Fun).(*types.Named)
	if !ok || named.Obj().Name() != "Key" || named.Obj().Pkg() == nil ||
		!strings.HasSuffix(named.Obj().Pkg().Path(), "internal/registry") {
		return ServiceInfo{}, false
	}

	info := ServiceInfo{Type: types.ExprString(typeArg)}
	if lit, ok := call.Args[0].(*ast.BasicLit); ok && lit.Kind == token.STRING {
		if key, err := strconv.Unquote(lit.Value); err == nil {
			info.Key = key
		}
	}
	return info, true
}

func printServices(out io.Writer, services []ServiceInfo) error {
	fmt.Fprintln(out, "Available Services in the Registry:")
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KEY\tTYPE\tPACKAGE")
	fmt.Fprintln(w, "---\t----\t-------")
	for _, s := range services {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Key, s.Type, s.Package)
	}
	return w.Flush()
}
