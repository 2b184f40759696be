package mysql

import (
	"strconv"

	"github.com/pingcap/tidb/pkg/parser/ast"

	"schemasynth/internal/core"
)

func (p *Parser) parseTableOptions(opts []*ast.TableOption, table *core.Table) {
	for _, opt := range opts {
		switch opt.Tp {
		case ast.TableOptionComment:
			table.Comment = opt.StrValue
		case ast.TableOptionCharset:
			table.Options["CHARSET"] = opt.StrValue
		case ast.TableOptionCollate:
			table.Options["COLLATE"] = opt.StrValue
		case ast.TableOptionEngine:
			table.Options["ENGINE"] = opt.StrValue
		case ast.TableOptionAutoIncrement:
			table.Options["AUTO_INCREMENT"] = strconv.FormatUint(opt.UintValue, 10)
		case ast.TableOptionRowFormat:
			if rf := rowFormatToString(opt.UintValue); rf != "" {
				table.Options["ROW_FORMAT"] = rf
			}
		case ast.TableOptionAvgRowLength:
			table.Options["AVG_ROW_LENGTH"] = strconv.FormatUint(opt.UintValue, 10)
		case ast.TableOptionKeyBlockSize:
			table.Options["KEY_BLOCK_SIZE"] = strconv.FormatUint(opt.UintValue, 10)
		case ast.TableOptionMaxRows:
			table.Options["MAX_ROWS"] = strconv.FormatUint(opt.UintValue, 10)
		case ast.TableOptionMinRows:
			table.Options["MIN_ROWS"] = strconv.FormatUint(opt.UintValue, 10)
		case ast.TableOptionCompression:
			table.Options["COMPRESSION"] = opt.StrValue
		case ast.TableOptionEncryption:
			table.Options["ENCRYPTION"] = opt.StrValue
		case ast.TableOptionStatsPersistent:
			table.Options["STATS_PERSISTENT"] = defaultOrUint(opt)
		case ast.TableOptionStatsAutoRecalc:
			table.Options["STATS_AUTO_RECALC"] = defaultOrUint(opt)
		case ast.TableOptionStatsSamplePages:
			table.Options["STATS_SAMPLE_PAGES"] = defaultOrUint(opt)
		default:
		}
	}
}

func defaultOrUint(opt *ast.TableOption) string {
	if opt.Default {
		return "DEFAULT"
	}
	return strconv.FormatUint(opt.UintValue, 10)
}

func rowFormatToString(v uint64) string {
	switch v {
	case ast.RowFormatFixed:
		return "FIXED"
	case ast.RowFormatDynamic:
		return "DYNAMIC"
	case ast.RowFormatCompressed:
		return "COMPRESSED"
	case ast.RowFormatRedundant:
		return "REDUNDANT"
	case ast.RowFormatCompact:
		return "COMPACT"
	case ast.RowFormatDefault:
		return "DEFAULT"
	default:
		return ""
	}
}
