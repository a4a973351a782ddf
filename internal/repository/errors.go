// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 表示目标记录不存在。
	ErrNotFound = errors.New("record not found")
	// ErrConstraintViolation 表示写入违反了外键或唯一约束。
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrCategoryInUse 表示分类下仍有内容条目，不能删除。
	ErrCategoryInUse = errors.New("category still has content entries")
)

// translateError 将驱动层错误归类为上面的哨兵错误，其余错误原样包装。
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrDuplicatedKey), isConstraintMessage(err):
		return fmt.Errorf("%s: %w: %v", op, ErrConstraintViolation, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// 部分驱动没有实现 gorm 的错误翻译，按报错文本兜底识别。
func isConstraintMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "violates foreign key")
}

// deleteResult 把 Delete 的结果统一转换为 error：0 行受影响即为 ErrNotFound。
func deleteResult(op string, res *gorm.DB) error {
	if res.Error != nil {
		return translateError(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
