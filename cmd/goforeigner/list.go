package main

import (
	"goforeigner/internal/diag"
	"goforeigner/internal/generation"
	"goforeigner/internal/metadata"
	"goforeigner/internal/parser"
	"goforeigner/internal/typemap"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const listLongDescription = `List every declaration of the given sources with the bridge it expands to.

Constructors and static methods are listed as "skipped". Declarations whose
types have no bridge type are listed with the reason instead of a symbol.`

var listHeader = []string{"Class", "Variant", "Target", "Receiver", "Params", "Return", "Bridge"}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [paths...]",
		Short: "List declarations and their bridge symbols",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			_, files, err := resolveSources(cfg, args)
			if err != nil {
				return err
			}

			registry := cfg.Registry()
			var rows [][]string
			for _, path := range files {
				fileRows, err := listFile(path, cfg.PackageName, registry)
				if err != nil {
					return err
				}
				rows = append(rows, fileRows...)
			}
			newUI(cmd).Table(listHeader, rows)
			return nil
		},
	}
}

func listFile(path, packageName string, registry *typemap.Registry) ([][]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Wrap(err, diag.IOError, "could not read "+path)
	}
	classes, err := parser.ParseFile(path, string(src))
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for _, class := range classes {
		for _, desc := range class.Methods {
			rows = append(rows, []string{
				class.Name,
				desc.Variant.String(),
				desc.Target.String(),
				receiverColumn(desc.Signature.Receiver),
				paramsColumn(desc.Signature.Params),
				returnColumn(desc.Signature.Return),
				bridgeColumn(desc, class.Name, packageName, registry),
			})
		}
	}
	return rows, nil
}

func bridgeColumn(desc metadata.MethodDescriptor, className, packageName string, registry *typemap.Registry) string {
	fn, err := generation.Emit(desc, className, packageName, registry)
	if err != nil {
		if diags := diag.All(err); len(diags) > 0 {
			return diags[0].Message
		}
		return err.Error()
	}
	if fn == nil {
		return "skipped"
	}
	return fn.ExternalName
}

func receiverColumn(receiver *metadata.Receiver) string {
	if receiver == nil {
		return "-"
	}
	return receiver.String()
}

func paramsColumn(params []metadata.Param) string {
	parts := make([]string, 0, len(params))
	for _, param := range params {
		parts = append(parts, param.Name+": "+param.Type.String())
	}
	return strings.Join(parts, ", ")
}

func returnColumn(ret *metadata.TypeExpr) string {
	if ret == nil {
		return "-"
	}
	return ret.String()
}
