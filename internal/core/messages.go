package core

// Status lines shown while maintenance runs
const (
	msgUpdateCodes              = "Updating codes..."
	msgUpdatedCodes             = "Codes updated"
	msgFailedUpdateCodes        = "Failed to update codes"
	msgUpdatePatches            = "Updating patches..."
	msgUpdatedPatches           = "Patches updated"
	msgFailedUpdatePatches      = "Failed to update patches"
	msgUpdateDependencies       = "Updating dependencies..."
	msgUpdatedDependencies      = "Dependencies updated"
	msgFailedUpdateDependencies = "Failed to update dependencies"
	msgInstallDependencies      = "Installing dependencies..."
	msgInstallLoader            = "Installing mod loader..."
	msgUpdateLoader             = "Updating mod loader..."
	msgLoaderUpdated            = "Mod loader updated"
	msgFailedUpdateLoader       = "Failed to update mod loader"
)
