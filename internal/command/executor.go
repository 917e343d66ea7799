package command

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dunelark/tunecast/internal/models"
	"github.com/dunelark/tunecast/internal/player"
	"github.com/dunelark/tunecast/internal/shared"
	"github.com/dunelark/tunecast/internal/store"
)

const (
	invalidArgsCountFormat = "Invalid count of arguments: \"%s\" expects %d arguments. Example: \"%s\""
	notLoggedIn            = "You are not logged in"

	cmdLogin          = "login"
	cmdRegister       = "register"
	cmdLogout         = "logout"
	cmdDisconnect     = "disconnect"
	cmdSearch         = "search"
	cmdTop            = "top"
	cmdCreatePlaylist = "create-playlist"
	cmdAddSongTo      = "add-song-to"
	cmdShowPlaylist   = "show-playlist"
	cmdPlayPlaylist   = "play-playlist"
	cmdPlay           = "play"
	cmdStop           = "stop"
	cmdManual         = "man"
)

// Executor dispatches parsed commands against the catalogue store and the
// music player, consulting the connection's session for authentication.
//
// Replies are always plain strings: validation, authorization and not-found
// conditions are protocol output, never Go errors.
//
// Validation order is part of the protocol. Commands with a fixed arity
// (login, register, top, create-playlist, show-playlist, play-playlist)
// report a usage error before the login check; variable-arity commands
// (search, add-song-to, play) check login first. Clients rely on these
// replies, so the asymmetry stays.
type Executor struct {
	store   store.Store
	player  player.Player
	session *Session
	logger  *log.Logger
}

// NewExecutor creates an Executor bound to one session.
func NewExecutor(st store.Store, pl player.Player, session *Session, logger *log.Logger) *Executor {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Executor{store: st, player: pl, session: session, logger: logger}
}

// Session returns the session this executor consults.
func (e *Executor) Session() *Session { return e.session }

// Execute runs one parsed command and returns the reply to send back.
func (e *Executor) Execute(cmd Command) string {
	e.logger.Debug("executing command", "name", cmd.Name, "args", len(cmd.Args))

	switch cmd.Name {
	case cmdLogin:
		return e.login(cmd.Args)
	case cmdRegister:
		return e.register(cmd.Args)
	case cmdLogout:
		return e.logout()
	case cmdDisconnect:
		return e.disconnect()
	case cmdSearch:
		return e.search(cmd.Args)
	case cmdTop:
		return e.top(cmd.Args)
	case cmdCreatePlaylist:
		return e.createPlaylist(cmd.Args)
	case cmdAddSongTo:
		return e.addSongTo(cmd.Args)
	case cmdShowPlaylist:
		return e.showPlaylist(cmd.Args)
	case cmdPlayPlaylist:
		return e.playPlaylist(cmd.Args)
	case cmdPlay:
		return e.play(cmd.Args)
	case cmdStop:
		return e.stop()
	case cmdManual:
		return manual
	default:
		return "Unknown command"
	}
}

func usageError(name string, arity int, example string) string {
	return fmt.Sprintf(invalidArgsCountFormat, name, arity, example)
}

func (e *Executor) login(args []string) string {
	if len(args) != 2 {
		return usageError(cmdLogin, 2, cmdLogin+" <email> <password>")
	}

	email, password := args[0], args[1]
	if e.store.UserExists(email, password) {
		e.session.Login(email)
		e.logger.Info("user logged in", "email", email)
		return fmt.Sprintf("User %s successfully logged in", email)
	}
	return "Invalid email/password combination"
}

func (e *Executor) register(args []string) string {
	if len(args) != 2 {
		return usageError(cmdRegister, 2, cmdRegister+" <email> <password>")
	}

	email, password := args[0], args[1]
	if e.store.AddUser(email, password) {
		e.logger.Info("user registered", "email", email)
		return fmt.Sprintf("User %s successfully registered", email)
	}
	return fmt.Sprintf("Email %s is already taken, select another one", email)
}

func (e *Executor) logout() string {
	if !e.session.LoggedIn() {
		return notLoggedIn
	}
	e.session.Logout()
	return "Successfully logged out"
}

func (e *Executor) disconnect() string {
	if !e.session.LoggedIn() {
		return notLoggedIn
	}
	e.store.DeleteUser(e.session.User())
	e.session.Logout()
	return "Successfully disconnected"
}

func (e *Executor) search(args []string) string {
	if !e.session.LoggedIn() {
		return notLoggedIn
	}

	// Union over all words, collapsed to set semantics: a song matching two
	// words appears once, at the position of its first match.
	var matches []*models.Song
	seen := map[string]struct{}{}
	for _, word := range args {
		for _, song := range e.store.Songs() {
			if !strings.Contains(song.FullName(), word) {
				continue
			}
			if _, ok := seen[song.FullName()]; ok {
				continue
			}
			seen[song.FullName()] = struct{}{}
			matches = append(matches, song)
		}
	}

	if len(matches) == 0 {
		return "The are no found songs"
	}
	return renderSongs(matches)
}

func (e *Executor) top(args []string) string {
	if len(args) != 1 {
		return usageError(cmdTop, 1, cmdTop+" <number>")
	}
	if !e.session.LoggedIn() {
		return notLoggedIn
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return "Please insert a valid number"
	}
	if n <= 0 {
		return "Please insert positive number"
	}

	songs := e.store.Songs()
	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].Rating() > songs[j].Rating()
	})
	if len(songs) > n {
		songs = songs[:n]
	}

	if len(songs) == 0 {
		return "There are no songs"
	}
	return renderSongs(songs)
}

func (e *Executor) createPlaylist(args []string) string {
	if len(args) != 1 {
		return usageError(cmdCreatePlaylist, 1, cmdCreatePlaylist+" <playlistName>")
	}
	if !e.session.LoggedIn() {
		return notLoggedIn
	}

	name := args[0]
	if e.store.AddPlaylist(models.NewPlaylist(name)) {
		return fmt.Sprintf("Playlist %s successfully created", name)
	}
	return fmt.Sprintf("Playlist %s is already existing", name)
}

func (e *Executor) addSongTo(args []string) string {
	if !e.session.LoggedIn() {
		return notLoggedIn
	}

	var playlistName, songFullName string
	if len(args) > 0 {
		playlistName = args[0]
		songFullName = strings.Join(args[1:], " ")
	}

	song := e.store.SongByFullName(songFullName)
	if song == nil {
		return fmt.Sprintf("There is no song with name %s", songFullName)
	}
	playlist := e.store.PlaylistByName(playlistName)
	if playlist == nil {
		return fmt.Sprintf("There is no playlist with name %s", playlistName)
	}
	if e.store.AddSongToPlaylist(playlist, song) {
		return fmt.Sprintf("Song %s successfully added to playlist %s", songFullName, playlistName)
	}
	return fmt.Sprintf("Song %s is already in playlist %s", songFullName, playlistName)
}

func (e *Executor) showPlaylist(args []string) string {
	if len(args) != 1 {
		return usageError(cmdShowPlaylist, 1, cmdShowPlaylist+" <playlistName>")
	}
	if !e.session.LoggedIn() {
		return notLoggedIn
	}

	name := args[0]
	playlist := e.store.PlaylistByName(name)
	if playlist == nil {
		return fmt.Sprintf("There is no playlist %s", name)
	}
	if playlist.Empty() {
		return fmt.Sprintf("There are no songs in playlist %s", name)
	}
	return playlist.String()
}

func (e *Executor) playPlaylist(args []string) string {
	if len(args) != 1 {
		return usageError(cmdPlayPlaylist, 1, cmdPlayPlaylist+" <playlistName>")
	}
	if !e.session.LoggedIn() {
		return notLoggedIn
	}

	name := args[0]
	playlist := e.store.PlaylistByName(name)
	if playlist == nil {
		return fmt.Sprintf("There are no playlist with name %s", name)
	}
	songs := playlist.Songs()
	if len(songs) == 0 {
		return fmt.Sprintf("There are no songs in playlist %s", name)
	}
	for _, song := range songs {
		e.player.Play(song)
	}
	return fmt.Sprintf("Playlist %s was successfully played", name)
}

func (e *Executor) play(args []string) string {
	if !e.session.LoggedIn() {
		return notLoggedIn
	}

	songFullName := strings.Join(args, " ")
	song := e.store.SongByFullName(songFullName)
	if song == nil {
		return fmt.Sprintf("There is no song %s", songFullName)
	}
	e.store.UpdateSongRating(song)
	e.player.Play(song)
	return fmt.Sprintf("Song %s was successfully played", songFullName)
}

func (e *Executor) stop() string {
	if !e.session.LoggedIn() {
		return notLoggedIn
	}
	if err := e.player.Stop(); err != nil {
		return "There is not song playing"
	}
	return "Music player successfully stopped"
}

// renderSongs renders a result set the way replies have always looked:
// bracketed, comma separated, in the order the songs were collected.
func renderSongs(songs []*models.Song) string {
	rendered := make([]string, len(songs))
	for i, song := range songs {
		rendered[i] = song.String()
	}
	return "[" + strings.Join(rendered, ", ") + "]"
}

const manual = `Tunecast manual
Available commands
register <email> <password> - register a new account
login <email> <password> - log in with an existing account
logout - log out of the current session
disconnect - delete the account and end the session
search <words>... - search for songs by keywords
top <number> - print the most listened songs
create-playlist <name> - create a new playlist
add-song-to <playlist> <song full name> - add a song to a playlist
show-playlist <name> - print the songs of a playlist
play-playlist <name> - play every song in a playlist
play <song full name> - play a song
stop - stop the playing song
man - print this manual
quit - exit the client`
