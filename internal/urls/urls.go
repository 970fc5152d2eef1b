package urls

// Project and documentation URLs
// The README and guides live in the repository at https://github.com/joannywerner/registrar

// Project is shown in the form header.
const Project = "github.com/joannywerner/registrar"

// Repository is the project home page.
const Repository = "https://" + Project

// BackendGuide explains how to point the client at a backend and how to run
// the development backend.
const BackendGuide = Repository + "#backend"

// ConfigurationGuide documents the settings file, REGISTRAR_* variables and
// flag precedence.
const ConfigurationGuide = Repository + "#configuration"
