package domain

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// ErrorCode is the closed set of API failure codes. Clients branch on the
// code; the paired messages are presentation only.
type ErrorCode string

const (
	// Authentication
	ErrInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrAccountLocked      ErrorCode = "ACCOUNT_LOCKED"
	ErrAccountInactive    ErrorCode = "ACCOUNT_INACTIVE"

	// Authorization
	ErrUnauthorizedEmail       ErrorCode = "UNAUTHORIZED_EMAIL"
	ErrInsufficientPermissions ErrorCode = "INSUFFICIENT_PERMISSIONS"
	ErrAccessDenied            ErrorCode = "ACCESS_DENIED"

	// Session
	ErrSessionExpired     ErrorCode = "SESSION_EXPIRED"
	ErrInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrNoActiveSession    ErrorCode = "NO_ACTIVE_SESSION"
	ErrNoSession          ErrorCode = "NO_SESSION"
	ErrInvalidSession     ErrorCode = "INVALID_SESSION"
	ErrInvalidSessionType ErrorCode = "INVALID_SESSION_TYPE"

	// Validation
	ErrInvalidEmail         ErrorCode = "INVALID_EMAIL"
	ErrWeakPassword         ErrorCode = "WEAK_PASSWORD"
	ErrInvalidInput         ErrorCode = "INVALID_INPUT"
	ErrMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"

	// Rate limiting
	ErrRateLimited     ErrorCode = "RATE_LIMITED"
	ErrTooManyAttempts ErrorCode = "TOO_MANY_ATTEMPTS"

	// OTP
	ErrOTPExpired     ErrorCode = "OTP_EXPIRED"
	ErrOTPInvalid     ErrorCode = "OTP_INVALID"
	ErrOTPAlreadyUsed ErrorCode = "OTP_ALREADY_USED"
	ErrOTPNotFound    ErrorCode = "OTP_NOT_FOUND"

	// Resources
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// System
	ErrInternal           ErrorCode = "INTERNAL_ERROR"
	ErrDatabase           ErrorCode = "DATABASE_ERROR"
	ErrServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrNetwork            ErrorCode = "NETWORK_ERROR"
	ErrTimeout            ErrorCode = "TIMEOUT"
	ErrConfiguration      ErrorCode = "CONFIGURATION_ERROR"
)

type catalogEntry struct {
	english string
	arabic  string
	status  int
}

var errorCatalog = map[ErrorCode]catalogEntry{
	ErrInvalidCredentials: {"Invalid email or password", "البريد الإلكتروني أو كلمة المرور غير صحيحة", http.StatusUnauthorized},
	ErrAccountLocked:      {"Account is locked due to too many failed attempts", "تم قفل الحساب بسبب كثرة المحاولات الفاشلة", http.StatusForbidden},
	ErrAccountInactive:    {"Account is inactive", "الحساب غير نشط", http.StatusForbidden},

	ErrUnauthorizedEmail:       {"This email is not authorized for admin access", "هذا البريد الإلكتروني غير مصرح له بدخول الإدارة", http.StatusForbidden},
	ErrInsufficientPermissions: {"Insufficient permissions", "صلاحيات غير كافية", http.StatusForbidden},
	ErrAccessDenied:            {"Access denied", "تم رفض الوصول", http.StatusForbidden},

	ErrSessionExpired:     {"Your session has expired, please log in again", "انتهت صلاحية جلستك، يرجى تسجيل الدخول مرة أخرى", http.StatusUnauthorized},
	ErrInvalidToken:       {"Invalid authentication token", "رمز المصادقة غير صالح", http.StatusUnauthorized},
	ErrSessionNotFound:    {"Session not found", "الجلسة غير موجودة", http.StatusUnauthorized},
	ErrNoActiveSession:    {"No active session found", "لا توجد جلسة نشطة", http.StatusUnauthorized},
	ErrNoSession:          {"No session cookie provided", "لم يتم تقديم ملف تعريف ارتباط الجلسة", http.StatusUnauthorized},
	ErrInvalidSession:     {"Session is invalid", "الجلسة غير صالحة", http.StatusUnauthorized},
	ErrInvalidSessionType: {"Session type is not valid for this resource", "نوع الجلسة غير صالح لهذا المورد", http.StatusUnauthorized},

	ErrInvalidEmail:         {"Please enter a valid email address", "يرجى إدخال بريد إلكتروني صحيح", http.StatusBadRequest},
	ErrWeakPassword:         {"Password does not meet the security requirements", "كلمة المرور لا تلبي متطلبات الأمان", http.StatusBadRequest},
	ErrInvalidInput:         {"Invalid input provided", "المدخلات المقدمة غير صالحة", http.StatusBadRequest},
	ErrMissingRequiredField: {"A required field is missing", "حقل مطلوب مفقود", http.StatusBadRequest},

	ErrRateLimited:     {"Too many requests, please try again later", "طلبات كثيرة جداً، يرجى المحاولة لاحقاً", http.StatusTooManyRequests},
	ErrTooManyAttempts: {"Too many failed attempts, please request a new code", "محاولات فاشلة كثيرة، يرجى طلب رمز جديد", http.StatusTooManyRequests},

	ErrOTPExpired:     {"Verification code has expired, please request a new one", "انتهت صلاحية رمز التحقق، يرجى طلب رمز جديد", http.StatusUnauthorized},
	ErrOTPInvalid:     {"Invalid verification code", "رمز التحقق غير صحيح", http.StatusUnauthorized},
	ErrOTPAlreadyUsed: {"Verification code has already been used", "تم استخدام رمز التحقق من قبل", http.StatusUnauthorized},
	ErrOTPNotFound:    {"No verification code found for this email", "لا يوجد رمز تحقق لهذا البريد الإلكتروني", http.StatusUnauthorized},

	ErrNotFound:      {"The requested resource was not found", "المورد المطلوب غير موجود", http.StatusNotFound},
	ErrAlreadyExists: {"The resource already exists", "المورد موجود بالفعل", http.StatusConflict},

	ErrInternal:           {"An unexpected error occurred, please try again", "حدث خطأ غير متوقع، يرجى المحاولة مرة أخرى", http.StatusInternalServerError},
	ErrDatabase:           {"A storage error occurred, please try again", "حدث خطأ في التخزين، يرجى المحاولة مرة أخرى", http.StatusInternalServerError},
	ErrServiceUnavailable: {"Service is temporarily unavailable", "الخدمة غير متوفرة مؤقتاً", http.StatusServiceUnavailable},
	ErrNetwork:            {"A network error occurred", "حدث خطأ في الشبكة", http.StatusBadGateway},
	ErrTimeout:            {"The request timed out", "انتهت مهلة الطلب", http.StatusGatewayTimeout},
	ErrConfiguration:      {"Server is misconfigured", "الخادم غير مهيأ بشكل صحيح", http.StatusInternalServerError},
}

// AuthError is the typed error carried from the failure site to the HTTP
// boundary. Details may hold internal context; SanitizeDetails filters it
// before anything reaches a response body.
type AuthError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	MessageAr  string         `json:"message_ar"`
	StatusCode int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

func (e *AuthError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewAuthError builds a taxonomy error. An unknown code degrades to
// INTERNAL_ERROR rather than panicking. customMessage overrides the English
// message only; the Arabic text always comes from the catalog.
func NewAuthError(code ErrorCode, details map[string]any, customMessage ...string) *AuthError {
	entry, ok := errorCatalog[code]
	if !ok {
		code = ErrInternal
		entry = errorCatalog[ErrInternal]
	}

	message := entry.english
	if len(customMessage) > 0 && customMessage[0] != "" {
		message = customMessage[0]
	}

	return &AuthError{
		Code:       code,
		Message:    message,
		MessageAr:  entry.arabic,
		StatusCode: entry.status,
		Details:    details,
		Timestamp:  time.Now().UTC(),
	}
}

// detailAllowList is the set of detail keys safe to show a client. Everything
// else stays server side.
var detailAllowList = map[string]struct{}{
	"field":             {},
	"code":              {},
	"type":              {},
	"remainingAttempts": {},
	"lockoutDuration":   {},
	"retryAfter":        {},
	"validationErrors":  {},
}

// SanitizeDetails keeps only allow-listed keys. Returns nil when nothing
// survives, so callers can omit the field entirely.
func SanitizeDetails(details map[string]any) map[string]any {
	if len(details) == 0 {
		return nil
	}
	out := make(map[string]any)
	for key, value := range details {
		if _, ok := detailAllowList[key]; ok {
			out[key] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

var securitySensitive = map[ErrorCode]struct{}{
	ErrInvalidCredentials:      {},
	ErrAccountLocked:           {},
	ErrUnauthorizedEmail:       {},
	ErrInsufficientPermissions: {},
	ErrAccessDenied:            {},
	ErrTooManyAttempts:         {},
	ErrRateLimited:             {},
	ErrInvalidToken:            {},
	ErrInvalidSession:          {},
	ErrInvalidSessionType:      {},
}

// IsSecuritySensitive reports whether a failure with this code warrants an
// audit log entry.
func IsSecuritySensitive(code ErrorCode) bool {
	_, ok := securitySensitive[code]
	return ok
}

// Classify maps any error to a taxonomy error at the HTTP boundary. Typed
// errors pass through untouched; everything else is matched on message text as
// a fallback for errors raised outside our own code. The original message
// lands in Details for server logs and never survives SanitizeDetails.
func Classify(err error) *AuthError {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unauthorized") && strings.Contains(msg, "email"):
		return NewAuthError(ErrUnauthorizedEmail, nil)
	case strings.Contains(msg, "expired") && strings.Contains(msg, "otp"):
		return NewAuthError(ErrOTPExpired, nil)
	case strings.Contains(msg, "invalid") && strings.Contains(msg, "otp"):
		return NewAuthError(ErrOTPInvalid, nil)
	case strings.Contains(msg, "too many"):
		return NewAuthError(ErrTooManyAttempts, nil)
	case strings.Contains(msg, "rate limit"):
		return NewAuthError(ErrRateLimited, nil)
	case strings.Contains(msg, "session") && strings.Contains(msg, "expired"):
		return NewAuthError(ErrSessionExpired, nil)
	case strings.Contains(msg, "no active session"), strings.Contains(msg, "session not found"):
		return NewAuthError(ErrNoActiveSession, nil)
	case strings.Contains(msg, "not found"):
		return NewAuthError(ErrNotFound, nil)
	case strings.Contains(msg, "duplicate"), strings.Contains(msg, "already exists"):
		return NewAuthError(ErrAlreadyExists, nil)
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return NewAuthError(ErrTimeout, nil)
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "network"):
		return NewAuthError(ErrNetwork, nil)
	default:
		return NewAuthError(ErrInternal, map[string]any{"originalError": err.Error()})
	}
}
