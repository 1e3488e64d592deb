package infobip

// Wire types for POST /sms/2/text/advanced.

type sendRequest struct {
	Messages []outboundMessage `json:"messages"`
}

type outboundMessage struct {
	From              string        `json:"from"`
	Destinations      []destination `json:"destinations"`
	Text              string        `json:"text"`
	CallbackData      string        `json:"callbackData,omitempty"`
	NotifyURL         string        `json:"notifyUrl,omitempty"`
	NotifyContentType string        `json:"notifyContentType,omitempty"`
}

type destination struct {
	To string `json:"to"`
}

type sendResponse struct {
	BulkID   string        `json:"bulkId"`
	Messages []sentMessage `json:"messages"`
}

type sentMessage struct {
	To        string        `json:"to"`
	MessageID string        `json:"messageId"`
	Status    messageStatus `json:"status"`
}

type messageStatus struct {
	GroupID   int    `json:"groupId"`
	GroupName string `json:"groupName"`
	ID        int    `json:"id"`
	Name      string `json:"name"`
}
