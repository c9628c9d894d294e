// Package exporter 导出 sqlite 数据库的表结构与数据为 SQL 文本
package exporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"Memehub/pkg/log"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Table sqlite_master 中的一张表
type Table struct {
	Name string
	SQL  *string
}

type Exporter struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Exporter {
	return &Exporter{DB: db}
}

// Tables 按名称排序，不含 sqlite_ 内部表
func (e *Exporter) Tables(ctx context.Context) ([]Table, error) {
	var tables []Table
	err := e.DB.WithContext(ctx).
		Raw("SELECT name, sql FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name").
		Scan(&tables).Error
	return tables, err
}

// WriteSchema 每张表的 CREATE 语句
func (e *Exporter) WriteSchema(ctx context.Context, w io.Writer) error {
	tables, err := e.Tables(ctx)
	if err != nil {
		return err
	}
	return writeCreates(w, tables)
}

// WriteDump 先输出全部 CREATE 语句，再按表输出 INSERT
// 读取失败的表记录日志后跳过
func (e *Exporter) WriteDump(ctx context.Context, w io.Writer) error {
	tables, err := e.Tables(ctx)
	if err != nil {
		return err
	}
	if err := writeCreates(w, tables); err != nil {
		return err
	}

	for _, t := range tables {
		inserts, err := e.inserts(ctx, t.Name)
		if err != nil {
			log.L.Error("export table", zap.String("table", t.Name), zap.Error(err))
			continue
		}
		if len(inserts) == 0 {
			continue
		}
		for _, stmt := range inserts {
			if _, err := io.WriteString(w, stmt+"\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func writeCreates(w io.Writer, tables []Table) error {
	for _, t := range tables {
		if t.SQL == nil || *t.SQL == "" {
			continue
		}
		if _, err := io.WriteString(w, *t.SQL+";\n\n"); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) inserts(ctx context.Context, table string) ([]string, error) {
	rows, err := e.DB.WithContext(ctx).Raw("SELECT * FROM " + QuoteIdent(table)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = QuoteIdent(c)
	}
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES (", QuoteIdent(table), strings.Join(quoted, ", "))

	var out []string
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		literals := make([]string, len(values))
		for i, v := range values {
			literals[i] = Literal(v)
		}
		out = append(out, prefix+strings.Join(literals, ", ")+");")
	}
	return out, rows.Err()
}

// QuoteIdent "name"，内部双引号加倍
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Literal 值转 SQL 字面量
func Literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []byte:
		return quoteString(string(x))
	case string:
		return quoteString(x)
	case time.Time:
		return quoteString(x.Format(time.RFC3339Nano))
	default:
		return quoteString(fmt.Sprint(x))
	}
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
