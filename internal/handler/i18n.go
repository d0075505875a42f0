package handler

import (
	"fmt"

	"github.com/bellari/internal/db"
	"github.com/bellari/internal/locale"
)

type messageKey string

const (
	msgLoginTitle          messageKey = "login_title"
	msgDashboardTitle      messageKey = "dashboard_title"
	msgPagesTitle          messageKey = "pages_title"
	msgEditPageTitle       messageKey = "edit_page_title"
	msgImagesTitle         messageKey = "images_title"
	msgSettingsTitle       messageKey = "settings_title"
	msgNotFoundTitle       messageKey = "not_found_title"
	msgInvalidCredentials  messageKey = "invalid_credentials"
	msgLoginRequired       messageKey = "login_required"
	msgSessionError        messageKey = "session_error"
	msgLoggedOut           messageKey = "logged_out"
	msgPageUpdated         messageKey = "page_updated"
	msgPageDeleted         messageKey = "page_deleted"
	msgPageTitleMissing    messageKey = "page_title_missing"
	msgSectionUpdated      messageKey = "section_updated"
	msgSectionCreated      messageKey = "section_created"
	msgSectionPairCreated  messageKey = "section_pair_created"
	msgSectionDeleted      messageKey = "section_deleted"
	msgSectionTypeInvalid  messageKey = "section_type_invalid"
	msgSectionLangInvalid  messageKey = "section_language_invalid"
	msgSectionsNormalized  messageKey = "sections_normalized"
	msgImageDeleted        messageKey = "image_deleted"
	msgUploadMissing       messageKey = "upload_missing"
	msgUploadExtension     messageKey = "upload_extension"
	msgUploadTooLarge      messageKey = "upload_too_large"
	msgUploadDecode        messageKey = "upload_decode"
	msgUploadFailed        messageKey = "upload_failed"
	msgSettingsSaved       messageKey = "settings_saved"
	msgInitDisabled        messageKey = "init_disabled"
	msgInitDone            messageKey = "init_done"
	msgInitSkipped         messageKey = "init_skipped"
	msgInitAdminCreated    messageKey = "init_admin_created"
	msgInitAdminMissing    messageKey = "init_admin_missing"
	msgInitPasswordTooWeak messageKey = "init_password_too_short"
	msgStorageError        messageKey = "storage_error"
)

var messages = map[messageKey][2]string{
	msgLoginTitle:          {"Connexion administrateur", "Admin login"},
	msgDashboardTitle:      {"Tableau de bord", "Dashboard"},
	msgPagesTitle:          {"Pages", "Pages"},
	msgEditPageTitle:       {"Modifier la page", "Edit page"},
	msgImagesTitle:         {"Images", "Images"},
	msgSettingsTitle:       {"Paramètres du site", "Site settings"},
	msgNotFoundTitle:       {"Page introuvable", "Page not found"},
	msgInvalidCredentials:  {"Nom d'utilisateur ou mot de passe invalide", "Invalid username or password"},
	msgLoginRequired:       {"Veuillez vous connecter pour accéder à cette page", "Please log in to access this page"},
	msgSessionError:        {"Impossible d'enregistrer la session", "Could not save the session"},
	msgLoggedOut:           {"Vous êtes déconnecté", "You have been logged out"},
	msgPageUpdated:         {"Page mise à jour", "Page updated successfully"},
	msgPageDeleted:         {"Page supprimée", "Page deleted"},
	msgPageTitleMissing:    {"Le titre de la page est obligatoire", "The page title is required"},
	msgSectionUpdated:      {"Section mise à jour", "Section updated successfully"},
	msgSectionCreated:      {"Section créée", "Section created successfully"},
	msgSectionPairCreated:  {"Sections FR et EN créées", "French and English sections created"},
	msgSectionDeleted:      {"Section supprimée", "Section deleted successfully"},
	msgSectionTypeInvalid:  {"Type de section inconnu", "Unknown section type"},
	msgSectionLangInvalid:  {"Langue non prise en charge", "Unsupported language"},
	msgSectionsNormalized:  {"%d section(s) renumérotée(s)", "%d section(s) renumbered"},
	msgImageDeleted:        {"Image supprimée", "Image deleted successfully"},
	msgUploadMissing:       {"Aucun fichier fourni", "No file provided"},
	msgUploadExtension:     {"Type de fichier non autorisé", "Invalid file type"},
	msgUploadTooLarge:      {"Fichier trop volumineux", "File is too large"},
	msgUploadDecode:        {"Le fichier n'est pas une image lisible", "The file is not a readable image"},
	msgUploadFailed:        {"Échec de l'envoi", "Upload failed"},
	msgSettingsSaved:       {"Paramètres enregistrés", "Settings saved"},
	msgInitDisabled:        {"L'initialisation de la base est désactivée pour des raisons de sécurité", "Database initialization is disabled for security reasons"},
	msgInitDone:            {"Base initialisée : %d page(s), %d section(s), %d paramètre(s)", "Database initialized: %d page(s), %d section(s), %d setting(s)"},
	msgInitSkipped:         {"Le contenu existe déjà, %d paramètre(s) ajouté(s)", "Content already exists, %d setting(s) added"},
	msgInitAdminCreated:    {"Compte administrateur %s créé", "Admin account %s created"},
	msgInitAdminMissing:    {"ADMIN_USERNAME et ADMIN_PASSWORD ne sont pas définis, aucun compte créé", "ADMIN_USERNAME and ADMIN_PASSWORD are not set, no account created"},
	msgInitPasswordTooWeak: {"ADMIN_PASSWORD doit contenir au moins 8 caractères", "ADMIN_PASSWORD must be at least 8 characters"},
	msgStorageError:        {"Erreur d'enregistrement, aucune modification appliquée", "Storage error, nothing was changed"},
}

// message 返回指定语言的提示文本，args 非空时按格式化模板填充。
func message(lang locale.Language, key messageKey, args ...interface{}) string {
	pair, ok := messages[key]
	if !ok {
		return string(key)
	}
	text := locale.Pick(lang, pair[0], pair[1])
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

var navLabels = map[string][2]string{
	db.PageSlugHome:      {"Accueil", "Home"},
	db.PageSlugAbout:     {"À propos", "About"},
	db.PageSlugServices:  {"Services", "Services"},
	db.PageSlugPortfolio: {"Réalisations", "Portfolio"},
	db.PageSlugContact:   {"Contact", "Contact"},
}

func navLabel(lang locale.Language, slug string) string {
	if pair, ok := navLabels[slug]; ok {
		return locale.Pick(lang, pair[0], pair[1])
	}
	return slug
}
