package models

import (
	"regexp"
	"strings"
)

// Validation messages are user-facing and kept in Arabic, matching the
// admin panel's locale. Callers treat a non-empty slice as a rejected write;
// no I/O is attempted for invalid input.

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like a standard email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// ArticleValidator builds the article validation function. knownCategory
// resolves a category id against the currently known category set; draft
// articles may carry short content, publishing requires at least 50 chars.
func ArticleValidator(knownCategory func(id string) bool) func(*Article) []string {
	return func(a *Article) []string {
		var errs []string

		if len([]rune(strings.TrimSpace(a.Title))) < 3 {
			errs = append(errs, "العنوان يجب أن يكون 3 أحرف على الأقل")
		}

		if a.Status == StatusPublished && len([]rune(strings.TrimSpace(a.Content))) < 50 {
			errs = append(errs, "المحتوى يجب أن يكون 50 حرف على الأقل")
		}

		if strings.TrimSpace(a.Category) == "" || !knownCategory(a.Category) {
			errs = append(errs, "يجب اختيار فئة للمقال")
		}

		return errs
	}
}

func ValidateCategory(c *Category) []string {
	var errs []string

	if len([]rune(strings.TrimSpace(c.Name))) < 2 {
		errs = append(errs, "الاسم يجب أن يكون حرفين على الأقل")
	}
	if strings.TrimSpace(c.Color) == "" {
		errs = append(errs, "لون الفئة مطلوب")
	}
	if strings.TrimSpace(c.Icon) == "" {
		errs = append(errs, "أيقونة الفئة مطلوبة")
	}

	return errs
}

func ValidateUser(u *User) []string {
	var errs []string

	if len([]rune(strings.TrimSpace(u.Name))) < 2 {
		errs = append(errs, "الاسم يجب أن يكون حرفين على الأقل")
	}
	if !ValidEmail(u.Email) {
		errs = append(errs, "البريد الإلكتروني غير صحيح")
	}
	if u.Role == "" {
		errs = append(errs, "يجب اختيار دور للمستخدم")
	}

	return errs
}

func ValidateMedia(m *Media) []string {
	var errs []string

	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, "اسم الملف مطلوب")
	}
	if strings.TrimSpace(m.URL) == "" {
		errs = append(errs, "رابط الملف مطلوب")
	}

	return errs
}

func ValidateTestimonial(tm *Testimonial) []string {
	var errs []string

	if strings.TrimSpace(tm.Author) == "" {
		errs = append(errs, "اسم صاحب الشهادة مطلوب")
	}
	if strings.TrimSpace(tm.Quote) == "" {
		errs = append(errs, "نص الشهادة مطلوب")
	}

	return errs
}

func ValidateSubscriber(s *Subscriber) []string {
	var errs []string

	if !ValidEmail(s.Email) {
		errs = append(errs, "البريد الإلكتروني غير صحيح")
	}

	return errs
}
