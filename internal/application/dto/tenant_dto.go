package dto

// ErrorResponse formato estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RegisterTenantRequest alta de un tenant en el primer contacto.
type RegisterTenantRequest struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

// CompleteOnboardingRequest datos del negocio que cierran el onboarding.
type CompleteOnboardingRequest struct {
	BusinessName string `json:"business_name"`
	BusinessType string `json:"business_type"`
	Location     string `json:"location"`
}

// TenantResponse representación externa de un tenant.
type TenantResponse struct {
	TelegramID   int64  `json:"telegram_id"`
	Username     string `json:"username,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	BusinessType string `json:"business_type,omitempty"`
	Location     string `json:"location,omitempty"`
	Onboarded    bool   `json:"onboarded"`
	Namespace    string `json:"namespace,omitempty"`
}

// ProvisioningStatusResponse estado del almacenamiento de un tenant.
type ProvisioningStatusResponse struct {
	TelegramID  int64 `json:"telegram_id"`
	Provisioned bool  `json:"provisioned"`
}
