package models

import "time"

// Seed defaults materialized the first time a collection's cache key is
// absent, so a fresh install shows a populated demo UI. Once a collection
// has been persisted, even as an empty array, the seeds never regenerate.

var seedTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func DefaultCategories() []*Category {
	return []*Category{
		{
			Meta:         Meta{ID: "entrepreneurship", CreatedAt: seedTime, UpdatedAt: seedTime},
			Name:         "ريادة الأعمال",
			Description:  "مقالات عن ريادة الأعمال والشركات الناشئة",
			Color:        "#1a365d",
			Icon:         "layers",
			Slug:         "entrepreneurship",
			ArticleCount: 5,
		},
		{
			Meta:         Meta{ID: "ecommerce", CreatedAt: seedTime, UpdatedAt: seedTime},
			Name:         "التجارة الإلكترونية",
			Description:  "مقالات عن التجارة الإلكترونية والمتاجر الإلكترونية",
			Color:        "#3182ce",
			Icon:         "shopping-cart",
			Slug:         "ecommerce",
			ArticleCount: 3,
		},
		{
			Meta:         Meta{ID: "marketing", CreatedAt: seedTime, UpdatedAt: seedTime},
			Name:         "التسويق الرقمي",
			Description:  "مقالات عن التسويق الرقمي واستراتيجيات التسويق",
			Color:        "#38a169",
			Icon:         "megaphone",
			Slug:         "marketing",
			ArticleCount: 4,
		},
		{
			Meta:         Meta{ID: "freelancing", CreatedAt: seedTime, UpdatedAt: seedTime},
			Name:         "العمل الحر",
			Description:  "مقالات عن العمل الحر والخدمات الاستشارية",
			Color:        "#d69e2e",
			Icon:         "briefcase",
			Slug:         "freelancing",
			ArticleCount: 2,
		},
		{
			Meta:         Meta{ID: "investment", CreatedAt: seedTime, UpdatedAt: seedTime},
			Name:         "الاستثمار الرقمي",
			Description:  "مقالات عن الاستثمار في المشاريع الرقمية",
			Color:        "#e53e3e",
			Icon:         "trending-up",
			Slug:         "investment",
			ArticleCount: 1,
		},
		{
			Meta:         Meta{ID: "tools", CreatedAt: seedTime, UpdatedAt: seedTime},
			Name:         "الأدوات والموارد",
			Description:  "مقالات عن الأدوات والموارد المفيدة",
			Color:        "#805ad5",
			Icon:         "tool",
			Slug:         "tools",
			ArticleCount: 3,
		},
	}
}

func DefaultArticles() []*Article {
	return []*Article{
		{
			Meta:     Meta{ID: "starting-your-first-business", CreatedAt: seedTime, UpdatedAt: seedTime},
			Title:    "كيف تبدأ مشروعك الأول",
			Slug:     "starting-your-first-business",
			Excerpt:  "دليل عملي لتأسيس مشروعك الناشئ خطوة بخطوة",
			Content:  "تأسيس مشروع ناشئ يبدأ بفكرة واضحة ودراسة سوق دقيقة، ثم خطة تنفيذ قابلة للقياس.",
			Category: "entrepreneurship",
			Status:   StatusPublished,
			Views:    120,
		},
		{
			Meta:     Meta{ID: "ecommerce-store-guide", CreatedAt: seedTime.Add(24 * time.Hour), UpdatedAt: seedTime.Add(24 * time.Hour)},
			Title:    "دليل إنشاء متجر إلكتروني",
			Slug:     "ecommerce-store-guide",
			Excerpt:  "الخطوات الأساسية لإطلاق متجرك الإلكتروني",
			Content:  "اختيار المنصة المناسبة وبوابة الدفع وخطة الشحن هي الركائز الثلاث لأي متجر ناجح.",
			Category: "ecommerce",
			Status:   StatusPublished,
			Views:    85,
		},
		{
			Meta:     Meta{ID: "digital-marketing-basics", CreatedAt: seedTime.Add(48 * time.Hour), UpdatedAt: seedTime.Add(48 * time.Hour)},
			Title:    "أساسيات التسويق الرقمي",
			Slug:     "digital-marketing-basics",
			Excerpt:  "مدخل إلى قنوات التسويق الرقمي الحديثة",
			Content:  "يغطي هذا المقال تحسين محركات البحث والإعلانات المدفوعة والتسويق بالمحتوى.",
			Category: "marketing",
			Status:   StatusDraft,
		},
	}
}

func DefaultUsers() []*User {
	return []*User{
		{
			Meta:   Meta{ID: "1", CreatedAt: seedTime, UpdatedAt: seedTime},
			Name:   "مدير النظام",
			Email:  "admin@alphaknow.com",
			Role:   RoleAdmin,
			Active: true,
		},
		{
			Meta:   Meta{ID: "2", CreatedAt: seedTime.Add(96 * time.Hour), UpdatedAt: seedTime.Add(96 * time.Hour)},
			Name:   "كاتب المحتوى",
			Email:  "writer@alphaknow.com",
			Role:   RoleWriter,
			Active: true,
		},
	}
}

func DefaultMedia() []*Media {
	return []*Media{
		{
			Meta: Meta{ID: "hero-image", CreatedAt: seedTime, UpdatedAt: seedTime},
			Name: "hero.jpg",
			URL:  "/images/hero.jpg",
			Type: "image/jpeg",
			Size: 245760,
		},
	}
}

func DefaultTestimonials() []*Testimonial {
	return []*Testimonial{
		{
			Meta:   Meta{ID: "t1", CreatedAt: seedTime, UpdatedAt: seedTime},
			Author: "سارة الأحمد",
			Role:   "رائدة أعمال",
			Quote:  "المحتوى ساعدني على إطلاق متجري الإلكتروني خلال شهرين",
			Rating: 5,
		},
		{
			Meta:   Meta{ID: "t2", CreatedAt: seedTime, UpdatedAt: seedTime},
			Author: "خالد العتيبي",
			Role:   "مسوق رقمي",
			Quote:  "مقالات عملية ومباشرة بعيدة عن الحشو",
			Rating: 4,
		},
	}
}

func DefaultSubscribers() []*Subscriber {
	return []*Subscriber{}
}
