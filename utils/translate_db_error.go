package utils

import (
	"errors"
	"strings"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

// TranslateDBError turns a database failure into a bilingual (EN, AR) pair
// that is safe to show a client.
func TranslateDBError(err error) (string, string) {
	if err == nil {
		return "", ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique violation
			if strings.Contains(pgErr.Message, "students_email_key") ||
				strings.Contains(pgErr.ConstraintName, "email") {
				return "Email already exists", "البريد الإلكتروني مستخدم مسبقاً"
			}
			return "Duplicate value, please use another", "قيمة مكررة، الرجاء استخدام قيمة أخرى"

		case "23503": // foreign key violation
			return "This record is referenced by another table", "هذا السجل مرتبط بسجلات أخرى"

		case "23502": // not-null violation
			return "Some required fields are missing", "بعض الحقول المطلوبة مفقودة"

		case "22P02": // invalid text representation
			return "Invalid data format", "صيغة البيانات غير صالحة"
		}
		return "A database error occurred", "حدث خطأ في قاعدة البيانات"
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "Record not found", "السجل غير موجود"
	}

	lowerErr := strings.ToLower(err.Error())
	if strings.Contains(lowerErr, "context deadline exceeded") {
		return "Request timeout", "انتهت مهلة الطلب"
	}
	if strings.Contains(lowerErr, "context canceled") {
		return "Request was cancelled", "تم إلغاء الطلب"
	}
	if strings.Contains(lowerErr, "connection") {
		return "Failed to reach the database", "تعذر الاتصال بقاعدة البيانات"
	}

	return "A database error occurred", "حدث خطأ في قاعدة البيانات"
}
