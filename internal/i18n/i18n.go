package i18n

import "strings"

// Arabic is the product language; English is kept for operators who switch
// via the lang cookie. Unknown codes fall back to the code itself so a
// missing entry is visible instead of blank.

const defaultLang = "ar"

var messages = map[string]map[string]string{
	"ar": {
		"login_title": "تسجيل الدخول",

		"flash_welcome":          "مرحباً بك!",
		"flash_login_invalid":    "بيانات الدخول غير صحيحة",
		"flash_admin_required":   "يتطلب صلاحيات المدير",
		"flash_created":          "تمت الإضافة",
		"flash_saved":            "تم الحفظ",
		"flash_deleted":          "تم الحذف",
		"flash_save_error":       "خطأ أثناء الحفظ",
		"flash_duplicate_user":   "خطأ: قد يكون اسم المستخدم مكرر",
		"flash_settings_saved":   "تم تحديث الإعدادات",
		"flash_payment_added":    "تمت إضافة الدفعة",
		"flash_contract_created": "تم إنشاء العقد",
		"flash_contract_saved":   "تم حفظ التعديلات",
		"flash_contract_deleted": "تم حذف العقد",

		"nav_dashboard":      "لوحة التحكم",
		"nav_users":          "المستخدمين",
		"nav_settings":       "الإعدادات",
		"nav_payments":       "المدفوعات",
		"nav_reports":        "تقارير المبيعات",
		"nav_contracts_temp": "العقود المؤقتة",
		"nav_contracts_perm": "العقود الدائمة",
		"nav_logout":         "خروج",

		"btn_save":   "حفظ",
		"btn_new":    "جديد",
		"btn_edit":   "تعديل",
		"btn_delete": "حذف",
		"btn_clear":  "مسح",
		"btn_filter": "عرض",
		"btn_login":  "دخول",

		"label_username":      "اسم المستخدم",
		"label_password":      "كلمة المرور",
		"label_name":          "الاسم",
		"label_phone":         "الهاتف",
		"label_role":          "الصلاحية",
		"role_admin":          "مدير",
		"role_staff":          "موظف",
		"label_date":          "التاريخ",
		"label_method":        "طريقة الدفع",
		"label_amount_net":    "المبلغ الصافي",
		"label_vat":           "الضريبة",
		"label_total":         "الإجمالي",
		"label_note":          "ملاحظة",
		"label_recorded_by":   "سجلها",
		"label_brand_name":    "اسم المكتب",
		"label_vat_rate":      "نسبة الضريبة %",
		"label_vat_visible":   "إظهار الضريبة",
		"label_vat_number":    "الرقم الضريبي",
		"label_from":          "من",
		"label_to":            "إلى",
		"label_all":           "الكل",
		"label_actions":       "إجراءات",
		"label_employee_name": "اسم العامل",
		"label_profession":    "المهنة",
		"label_salary":        "الراتب الشهري",
		"label_party3":        "الطرف الثالث",
		"label_terms":         "الشروط",
		"label_signature":     "التوقيع",
		"label_sponsor":       "الكفيل",
		"label_nationality":   "الجنسية",
		"label_address":       "العنوان",
		"label_amount":        "المبلغ",
		"label_warranty":      "ضمان",
		"label_warranty_dur":  "مدة الضمان",
		"label_documents":     "المستندات",

		"stat_payments_today": "دفعات اليوم",
		"stat_today_total":    "إجمالي اليوم",
	},
	"en": {
		"login_title": "Sign in",

		"flash_welcome":          "Welcome!",
		"flash_login_invalid":    "Invalid credentials",
		"flash_admin_required":   "Administrator privileges required",
		"flash_created":          "Created",
		"flash_saved":            "Saved",
		"flash_deleted":          "Deleted",
		"flash_save_error":       "Error while saving",
		"flash_duplicate_user":   "Error: username may already exist",
		"flash_settings_saved":   "Settings updated",
		"flash_payment_added":    "Payment added",
		"flash_contract_created": "Contract created",
		"flash_contract_saved":   "Changes saved",
		"flash_contract_deleted": "Contract deleted",

		"nav_dashboard":      "Dashboard",
		"nav_users":          "Users",
		"nav_settings":       "Settings",
		"nav_payments":       "Payments",
		"nav_reports":        "Sales reports",
		"nav_contracts_temp": "Temporary contracts",
		"nav_contracts_perm": "Permanent contracts",
		"nav_logout":         "Logout",

		"btn_save":   "Save",
		"btn_new":    "New",
		"btn_edit":   "Edit",
		"btn_delete": "Delete",
		"btn_clear":  "Clear",
		"btn_filter": "Filter",
		"btn_login":  "Sign in",

		"label_username":      "Username",
		"label_password":      "Password",
		"label_name":          "Name",
		"label_phone":         "Phone",
		"label_role":          "Role",
		"role_admin":          "Administrator",
		"role_staff":          "Staff",
		"label_date":          "Date",
		"label_method":        "Payment method",
		"label_amount_net":    "Net amount",
		"label_vat":           "VAT",
		"label_total":         "Total",
		"label_note":          "Note",
		"label_recorded_by":   "Recorded by",
		"label_brand_name":    "Office name",
		"label_vat_rate":      "VAT rate %",
		"label_vat_visible":   "Show VAT",
		"label_vat_number":    "VAT number",
		"label_from":          "From",
		"label_to":            "To",
		"label_all":           "All",
		"label_actions":       "Actions",
		"label_employee_name": "Employee name",
		"label_profession":    "Profession",
		"label_salary":        "Monthly salary",
		"label_party3":        "Third party",
		"label_terms":         "Terms",
		"label_signature":     "Signature",
		"label_sponsor":       "Sponsor",
		"label_nationality":   "Nationality",
		"label_address":       "Address",
		"label_amount":        "Amount",
		"label_warranty":      "Warranty",
		"label_warranty_dur":  "Warranty duration",
		"label_documents":     "Documents",

		"stat_payments_today": "Payments today",
		"stat_today_total":    "Today's total",
	},
}

// T translates code for lang, falling back to Arabic then to the code.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[defaultLang][code]; ok {
		return s
	}
	return code
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(header string) string {
	h := strings.ToLower(header)
	for _, part := range strings.Split(h, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		for lang := range messages {
			if tag == lang || strings.HasPrefix(tag, lang+"-") {
				return lang
			}
		}
	}
	return defaultLang
}

// Supported reports whether lang has a message table.
func Supported(lang string) bool {
	_, ok := messages[lang]
	return ok
}
